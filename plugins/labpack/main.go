package main

import (
	"context"

	providerrpc "voltref/internal/modules/provider/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *providerrpc.Empty) (*providerrpc.Metadata, error) {
	return &providerrpc.Metadata{
		Name:    "labpack",
		Version: "1.0.0",
	}, nil
}

// Offsets are literature values vs. SHE at 25°C, extending the built-in
// table with fills the default set does not carry.
func (s *server) ListElectrodes(_ context.Context, _ *providerrpc.Empty) (*providerrpc.ListElectrodesResponse, error) {
	return &providerrpc.ListElectrodesResponse{Electrodes: []providerrpc.Electrode{
		{Name: "Ag/AgCl (1M KCl)", OffsetVolts: 0.235},
		{Name: "Calomel (Sat'd NaCl, SSCE)", OffsetVolts: 0.236},
		{Name: "Ag/AgCl (0.1M KCl)", OffsetVolts: 0.288},
	}}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: providerrpc.HandshakeConfig,
		Plugins:         providerrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
