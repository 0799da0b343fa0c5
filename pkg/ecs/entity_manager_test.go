package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testFlightComponent struct {
	Progress float64
}

type testEffectComponent struct {
	TTL float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始，0保留为无效ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("expected ids 1,2, got %d,%d", id1, id2)
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testFlightComponent{})

	em.DestroyEntity(id)
	// 重复标记只算一次
	em.DestroyEntity(id)

	if !em.HasComponent(id, reflect.TypeOf(&testFlightComponent{})) {
		t.Error("entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("entity should be marked")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("mark should be cleared after cleanup")
	}
}

func TestDestroyUnknownEntityIgnored(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(EntityID(99))
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}

func TestGetEntitiesWithSortedByID(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testFlightComponent{Progress: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testEffectComponent{})
		}
	}

	// 多次查询顺序必须一致且升序
	for round := 0; round < 5; round++ {
		ids := GetEntitiesWith1[*testFlightComponent](em)
		if len(ids) != 50 {
			t.Fatalf("expected 50 entities, got %d", len(ids))
		}
		for i := 1; i < len(ids); i++ {
			if ids[i-1] >= ids[i] {
				t.Fatalf("ids not ascending at %d: %d >= %d", i, ids[i-1], ids[i])
			}
		}
	}

	both := GetEntitiesWith2[*testFlightComponent, *testEffectComponent](em)
	if len(both) != 25 {
		t.Errorf("expected 25 entities with both components, got %d", len(both))
	}
}

func TestDestroyAll(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 10; i++ {
		em.CreateEntity()
	}
	em.DestroyAll()
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("expected 0 entities, got %d", em.EntityCount())
	}
}

// TestGenericAPI 验证泛型 API 与反射 API 使用同一套组件类型键
func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testFlightComponent{Progress: 0.5})

	comp, ok := GetComponent[*testFlightComponent](em, id)
	if !ok || comp.Progress != 0.5 {
		t.Fatalf("GetComponent 失败: ok=%v comp=%+v", ok, comp)
	}
	if !em.HasComponent(id, reflect.TypeOf(&testFlightComponent{})) {
		t.Error("反射 API 应能查到泛型 API 添加的组件")
	}

	RemoveComponent[*testFlightComponent](em, id)
	if HasComponent[*testFlightComponent](em, id) {
		t.Error("RemoveComponent 后组件仍存在")
	}

	if _, ok := GetComponent[*testEffectComponent](em, id); ok {
		t.Error("不存在的组件不应返回 ok")
	}
}
