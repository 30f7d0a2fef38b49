package script

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/chuanjin/elmlink/internal/elm"
	"github.com/chuanjin/elmlink/internal/logger"
	"go.uber.org/zap"
)

var (
	reCommand = regexp.MustCompile(`(?m)^//\s*Command:\s*(.+?)\s*$`)
	reRequest = regexp.MustCompile(`(?m)^//\s*Request:\s*(.+?)\s*$`)
)

// Loader builds commands from a directory of decoder scripts. A script
// names its command and request in header comments:
//
//	// Command: Coolant
//	// Request: 0105
//	package decoder
//
//	func Decode(payload string) (interface{}, error) { ... }
type Loader struct {
	engine *Engine
	log    *zap.Logger
}

func NewLoader(e *Engine) *Loader {
	return &Loader{engine: e, log: logger.Named("script")}
}

// Load compiles every .go file in dir, in file name order.
func (l *Loader) Load(dir string) ([]elm.Command, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read script dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".go" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	cmds := make([]elm.Command, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		cmd, err := l.Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		l.log.Info("Loaded scripted command", zap.String("command", cmd.Label()), zap.String("file", name))
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Parse reads the headers of src, compiles it and returns the command.
func (l *Loader) Parse(src string) (elm.Command, error) {
	label, err := header(reCommand, src, "Command")
	if err != nil {
		return elm.Command{}, err
	}
	request, err := header(reRequest, src, "Request")
	if err != nil {
		return elm.Command{}, err
	}

	dec, err := l.engine.Compile(src)
	if err != nil {
		return elm.Command{}, err
	}

	return elm.NewCommand(label, []byte(request+string(elm.Terminator)), dec)
}

func header(re *regexp.Regexp, src, name string) (string, error) {
	m := re.FindStringSubmatch(src)
	if len(m) < 2 || strings.TrimSpace(m[1]) == "" {
		return "", fmt.Errorf("%w: missing // %s: header", elm.ErrInvalidCommandSpec, name)
	}
	return strings.TrimSpace(m[1]), nil
}
