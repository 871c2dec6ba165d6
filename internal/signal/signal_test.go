package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(sigs []Signal) []Name {
	out := make([]Name, 0, len(sigs))
	for _, s := range sigs {
		out = append(out, s.Name)
	}
	return out
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(func(Signal) { order = append(order, "first") })
	bus.Subscribe(func(Signal) { order = append(order, "second") })
	bus.Publish(Signal{Name: Drive})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_FiltersByName(t *testing.T) {
	bus := NewBus()
	var got []Signal

	bus.Subscribe(func(s Signal) { got = append(got, s) }, Collision, ReachedFinish)
	bus.Publish(Signal{Name: Drive})
	bus.Publish(Signal{Name: Collision})
	bus.Publish(Signal{Name: TurnLeft})
	bus.Publish(Signal{Name: ReachedFinish})

	assert.Equal(t, []Name{Collision, ReachedFinish}, names(got))
}

func TestBus_NestedPublishIsDepthFirst(t *testing.T) {
	bus := NewBus()
	var got []Signal

	bus.Subscribe(func(s Signal) {
		if s.Name == Drive {
			bus.Publish(Signal{Name: ReachedFinish})
		}
	})
	bus.Subscribe(func(s Signal) { got = append(got, s) })

	bus.Publish(Signal{Name: Drive})

	// The first subscriber re-publishes before the second one sees Drive.
	assert.Equal(t, []Name{ReachedFinish, Drive}, names(got))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	count := 0

	unsubscribe := bus.Subscribe(func(Signal) { count++ })
	bus.Publish(Signal{Name: Drive})
	unsubscribe()
	unsubscribe()
	bus.Publish(Signal{Name: Drive})

	assert.Equal(t, 1, count)
}

func TestBus_NilBusDrops(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(Signal{Name: Drive}) })
}

func TestSignal_LogValue(t *testing.T) {
	v := Signal{Name: StepExecuting, Line: 3}.LogValue()
	assert.Equal(t, "[name=step-executing line=3]", v.String())
}
