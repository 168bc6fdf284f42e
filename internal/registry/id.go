package registry

import "reflect"

// entityID reads the uint primary key of any model via its ID field.
func entityID(entity any) uint {
	v := reflect.Indirect(reflect.ValueOf(entity))
	f := v.FieldByName("ID")
	if !f.IsValid() || !f.CanUint() {
		return 0
	}
	return uint(f.Uint())
}

// setEntityID pins the primary key after binding an update payload, so a
// client-supplied id in the body can never redirect the write.
func setEntityID(entity any, id uint) {
	v := reflect.Indirect(reflect.ValueOf(entity))
	f := v.FieldByName("ID")
	if f.IsValid() && f.CanSet() && f.CanUint() {
		f.SetUint(uint64(id))
	}
}
