package component

import "github.com/lixenwraith/vi-runner/engine"

// UserData carries an opaque value for game code, e.g. the tag of a bullet's shooter
type UserData struct {
	Value any
}

func (u *UserData) Kind() engine.Kind { return KindUserData }

// UserValue returns o's user data value and whether it is a T
func UserValue[T any](o *engine.Object) (T, bool) {
	var zero T
	u, err := engine.GetAs[*UserData](o.Components(), KindUserData)
	if err != nil {
		return zero, false
	}
	v, ok := u.Value.(T)
	return v, ok
}
