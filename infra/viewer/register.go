package viewer

import (
	"os"

	"github.com/kilianp07/fleetsoc/core/factory"
	coreviewer "github.com/kilianp07/fleetsoc/core/viewer"
	"github.com/kilianp07/fleetsoc/infra/logger"
)

// init registers built-in viewers.
func init() {
	_ = coreviewer.Register("http", func(conf map[string]any) (coreviewer.Viewer, error) {
		var c HTTPConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewHTTPViewer(c, logger.New("viewer")), nil
	})
	_ = coreviewer.Register("stdout", func(map[string]any) (coreviewer.Viewer, error) {
		return NewWriterViewer(os.Stdout), nil
	})
}
