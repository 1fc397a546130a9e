// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings, such as the viewer section of the configuration file.
//
// Example usage:
//
//	reg := factory.NewRegistry[viewer.Viewer]()
//	reg.Register("stdout", func(conf map[string]any) (viewer.Viewer, error) {
//	    var c struct{ Title string `json:"title"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newStdout(os.Stdout, c.Title), nil
//	})
//	v, err := reg.Create(factory.ModuleConfig{Type: "stdout"})
package factory
