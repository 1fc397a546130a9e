package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listener struct{ addr string }

type listenerConf struct {
	Addr string `json:"addr"`
	Port int    `json:"port"`
}

func listenerRegistry(t *testing.T) *Registry[*listener] {
	t.Helper()
	reg := NewRegistry[*listener]()
	require.NoError(t, reg.Register("tcp", func(conf map[string]any) (*listener, error) {
		var c listenerConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Port == 0 {
			return nil, errors.New("port is required")
		}
		return &listener{addr: c.Addr}, nil
	}))
	return reg
}

func TestRegistry_Create(t *testing.T) {
	reg := listenerRegistry(t)

	l, err := reg.Create(ModuleConfig{Type: "tcp", Conf: map[string]any{"addr": "localhost", "port": 80}})
	require.NoError(t, err)
	assert.Equal(t, "localhost", l.addr)

	// environment overrides arrive as strings
	_, err = reg.Create(ModuleConfig{Type: "tcp", Conf: map[string]any{"port": "8050"}})
	require.NoError(t, err)
}

func TestRegistry_CreateErrors(t *testing.T) {
	reg := listenerRegistry(t)

	_, err := reg.Create(ModuleConfig{Type: "udp"})
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "[tcp]")

	_, err = reg.Create(ModuleConfig{Type: "tcp", Conf: map[string]any{"adr": "x", "port": 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcp: ")

	_, err = reg.Create(ModuleConfig{Type: "tcp"})
	assert.EqualError(t, err, "tcp: port is required")
}

func TestRegistry_Register(t *testing.T) {
	reg := listenerRegistry(t)
	err := reg.Register("tcp", func(map[string]any) (*listener, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Error(t, reg.Register("", func(map[string]any) (*listener, error) { return nil, nil }))
	if err := reg.Register("nil", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	assert.Equal(t, []string{"tcp"}, reg.Names())
}
