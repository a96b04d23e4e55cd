package donburihost

import (
	"github.com/plus3/glide/easing"
	"github.com/yohamta/donburi"
)

// Component types of the eased entities in a donburi world. Transform is written by
// the simulation and Display by Host.Frame.
var (
	Transform       = donburi.NewComponentType[easing.Transform]()
	Display         = donburi.NewComponentType[easing.DisplayTransform]()
	Easing          = donburi.NewComponentType[easing.Easing]()
	Config          = donburi.NewComponentType[easing.Config]()
	LinearVelocity  = donburi.NewComponentType[easing.LinearVelocity]()
	AngularVelocity = donburi.NewComponentType[easing.AngularVelocity]()
)

// entityOf gathers the easing view of an entry that has Transform and Easing.
func entityOf(entry *donburi.Entry) easing.Entity {
	e := easing.Entity{
		ID:        uint64(entry.Entity()),
		Transform: Transform.Get(entry),
		Easing:    Easing.Get(entry),
	}
	if entry.HasComponent(Config) {
		e.Config = Config.Get(entry)
	}
	if entry.HasComponent(LinearVelocity) {
		e.LinearVelocity = LinearVelocity.Get(entry)
	}
	if entry.HasComponent(AngularVelocity) {
		e.AngularVelocity = AngularVelocity.Get(entry)
	}
	return e
}
