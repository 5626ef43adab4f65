// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface: a name, an enabled switch and a Load
// hook registering its routes. The Manager keeps the registry and loads every enabled
// feature in registration order.
//
//	mgr := loader.NewManager(log)
//	mgr.Register(compare.NewFeature(...))
//	mgr.Register(integrity.NewFeature(...))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
