package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/fleetsoc/app"
)

const (
	dirPrompt = "Enter the folder path containing CSV files: "
	idsPrompt = "Enter Bus IDs (comma-separated): "
)

// ParseVehicleIDs parses a comma separated list of integer vehicle ids.
// Whitespace around ids is ignored, empty entries are rejected.
func ParseVehicleIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid vehicle id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no answer to %q", strings.TrimSpace(question))
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readRequest builds the analysis request from flags, prompting for the
// values left empty.
func readRequest(in io.Reader, out io.Writer, dir, vehicles string) (app.Request, error) {
	p := &prompter{in: bufio.NewReader(in), out: out}
	var err error
	if dir == "" {
		if dir, err = p.ask(dirPrompt); err != nil {
			return app.Request{}, err
		}
	}
	if vehicles == "" {
		if vehicles, err = p.ask(idsPrompt); err != nil {
			return app.Request{}, err
		}
	}
	ids, err := ParseVehicleIDs(vehicles)
	if err != nil {
		return app.Request{}, err
	}
	return app.Request{Dir: dir, VehicleIDs: ids}, nil
}
