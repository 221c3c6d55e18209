package calendar

import (
	"fmt"
	"sync"

	"github.com/vitorsousa/repcal/internal"
)

type Mux struct {
	mu       sync.Mutex
	gateways map[string]internal.Gateway
}

func NewMux() *Mux {
	return &Mux{
		gateways: make(map[string]internal.Gateway),
	}
}

func (m *Mux) Get(platform string) (internal.Gateway, error) {
	gw, ok := m.gateways[platform]
	if !ok {
		return nil, fmt.Errorf("calendar %q is not implemented", platform)
	}
	return gw, nil
}

func (m *Mux) Register(platform string, gw internal.Gateway) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gateways[platform] = gw
}
