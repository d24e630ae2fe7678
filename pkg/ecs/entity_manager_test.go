package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testSizeComponent struct {
	W, H float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID 从 1 开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("unexpected IDs: %d, %d", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count: got %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("component data mismatch: %+v", pos)
	}

	// 方法版本与泛型版本使用同一个类型键
	em.AddComponent(id, &testPositionComponent{X: 1, Y: 2})
	pos, _ = GetComponent[*testPositionComponent](em, id)
	if pos.X != 1 {
		t.Errorf("component should be replaced, got %+v", pos)
	}

	if _, ok := GetComponent[*testSizeComponent](em, id); ok {
		t.Error("missing component should not be found")
	}
	if _, ok := GetComponent[*testPositionComponent](em, 999); ok {
		t.Error("unknown entity should have no components")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testSizeComponent{W: 1, H: 1})

	if !HasComponent[*testSizeComponent](em, id) {
		t.Error("HasComponent should be true")
	}

	RemoveComponentOf[*testSizeComponent](em, id)
	if HasComponent[*testSizeComponent](em, id) {
		t.Error("component should be removed")
	}

	AddComponent(em, id, &testSizeComponent{})
	em.RemoveComponent(id, reflect.TypeOf(&testSizeComponent{}))
	if HasComponent[*testSizeComponent](em, id) {
		t.Error("component should be removed by reflect type")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)
	// 标记删除后在清理前仍然存在
	if !em.Exists(id) {
		t.Error("entity should exist until RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("entity should be removed")
	}
	if len(GetEntitiesWith1[*testPositionComponent](em)) != 0 {
		t.Error("destroyed entity should not be queried")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	var both []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testSizeComponent{})
			both = append(both, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testSizeComponent](em)
	if !reflect.DeepEqual(got, both) {
		t.Errorf("GetEntitiesWith2 = %v, want %v", got, both)
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 20 {
		t.Fatalf("GetEntitiesWith1 returned %d entities, want 20", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("result not sorted: %v", all)
		}
	}
}
