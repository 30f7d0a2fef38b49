package elm

import (
	"go.uber.org/zap"
)

// Reporter receives decoded values.
type Reporter interface {
	Report(label string, value any)
}

// LogReporter reports values at info level.
type LogReporter struct {
	Log *zap.Logger
}

func (r LogReporter) Report(label string, value any) {
	r.Log.Info(label, zap.Any("value", value))
}

// RunAndReport runs cmds in order and reports each result. It stops at the
// first failure; results already reported are left as they are.
func RunAndReport(s *Session, r Reporter, cmds ...Command) error {
	for _, cmd := range cmds {
		v, err := s.Run(cmd)
		if err != nil {
			return err
		}
		r.Report(cmd.label, v)
	}
	return nil
}
