package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey         = "voltref"
	serviceName          = "voltref.provider.v1.ElectrodeProvider"
	jsonCodecName        = "json"
	methodGetMetadata    = "/" + serviceName + "/GetMetadata"
	methodListElectrodes = "/" + serviceName + "/ListElectrodes"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "VOLTREF_PLUGIN",
	MagicCookieValue: "voltref",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Electrode struct {
	Name        string  `json:"name"`
	OffsetVolts float64 `json:"offset_volts"`
}

type ListElectrodesResponse struct {
	Electrodes []Electrode `json:"electrodes"`
}

type ElectrodeProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListElectrodes(ctx context.Context, in *Empty) (*ListElectrodesResponse, error)
}

type ElectrodeProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListElectrodes(ctx context.Context) (*ListElectrodesResponse, error)
}

type electrodeProviderClient struct {
	conn *grpc.ClientConn
}

func NewElectrodeProviderClient(conn *grpc.ClientConn) ElectrodeProviderClient {
	return &electrodeProviderClient{conn: conn}
}

func (c *electrodeProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electrodeProviderClient) ListElectrodes(ctx context.Context) (*ListElectrodesResponse, error) {
	out := &ListElectrodesResponse{}
	if err := c.conn.Invoke(ctx, methodListElectrodes, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterElectrodeProviderServer(server grpc.ServiceRegistrar, impl ElectrodeProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ElectrodeProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListElectrodes",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListElectrodes(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListElectrodes}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListElectrodes(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/provider-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ElectrodeProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterElectrodeProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewElectrodeProviderClient(conn), nil
}

func PluginMap(impl ElectrodeProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
