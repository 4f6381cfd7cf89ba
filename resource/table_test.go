package resource

import (
	"sync"
	"testing"
)

type testObserver struct {
	events []Event[string]
}

func (o *testObserver) OnEvent(e Event[string]) {
	o.events = append(o.events, e)
}

func TestTable_Basic(t *testing.T) {
	table := NewTable[string]()

	h := table.Insert("test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}

	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove should fail")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable[string]()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert("test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped || obs.events[1].Value != "test" {
		t.Fatalf("unexpected drop event %+v", obs.events[1])
	}
}

func TestTable_ObserverFunc(t *testing.T) {
	table := NewTable[int]()
	var created, dropped int
	table.Subscribe(ObserverFunc[int](func(e Event[int]) {
		switch e.Type {
		case EventCreated:
			created++
		case EventDropped:
			dropped++
		}
	}))
	h1 := table.Insert(1)
	table.Insert(2)
	table.Remove(h1)
	if created != 2 || dropped != 1 {
		t.Fatalf("created=%d dropped=%d", created, dropped)
	}
}

type dropCounter struct {
	count *int
}

func (d *dropCounter) Drop() {
	*d.count++
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable[*dropCounter]()
	count := 0

	h := table.Insert(&dropCounter{count: &count})
	table.Remove(h)
	if count != 1 {
		t.Fatalf("Expected Drop to be called once, got %d", count)
	}

	table.Insert(&dropCounter{count: &count})
	table.Insert(&dropCounter{count: &count})
	if err := table.Close(); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("Expected Close to drop remaining entries, got %d", count)
	}
	if h := table.Insert(&dropCounter{count: &count}); h != 0 {
		t.Fatal("Insert after Close should return 0")
	}
}

func TestTable_Concurrent(t *testing.T) {
	table := NewTable[int]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := table.Insert(g*1000 + i)
				if v, ok := table.Get(h); !ok || v != g*1000+i {
					t.Errorf("Get(%d) = %d, %v", h, v, ok)
					return
				}
				table.Remove(h)
			}
		}(g)
	}
	wg.Wait()
	if table.Len() != 0 {
		t.Fatalf("Len = %d after concurrent churn", table.Len())
	}
}
