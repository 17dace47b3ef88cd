// Package service exposes the reader and printer over gRPC. The schema is
// compiled from the embedded syntax.proto at startup and messages are built
// dynamically, so no generated code is involved.
package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/funvibe/sol/internal/definitions"
	"github.com/funvibe/sol/internal/syntax"
)

//go:embed syntax.proto
var schemaSource string

const (
	schemaFile  = "sol/syntax.proto"
	ServiceName = "sol.syntax.Syntax"
)

// LoadSchema compiles the embedded schema.
func LoadSchema() (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFile: schemaSource}),
	}
	fds, err := parser.ParseFiles(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", schemaFile, err)
	}
	return fds[0], nil
}

// unaryMethod fills resp from req.
type unaryMethod func(ctx context.Context, req, resp *dynamic.Message) error

// Server answers Syntax requests. Definitions in the catalog expand in
// incoming source and name closed subterms in printed text.
type Server struct {
	catalog *definitions.Catalog
	aliases map[string]syntax.Node
	sd      *desc.ServiceDescriptor
	methods map[string]unaryMethod
}

func New(catalog *definitions.Catalog) (*Server, error) {
	fd, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	sd := fd.FindService(ServiceName)
	if sd == nil {
		return nil, fmt.Errorf("service %s not found in %s", ServiceName, schemaFile)
	}

	s := &Server{
		catalog: catalog,
		aliases: catalog.Aliases(),
		sd:      sd,
	}
	s.methods = map[string]unaryMethod{
		"Parse":  s.parse,
		"Show":   s.show,
		"Encode": s.encode,
	}
	return s, nil
}

// Descriptor returns the service schema, for clients built on dynamic
// messages.
func (s *Server) Descriptor() *desc.ServiceDescriptor {
	return s.sd
}

// Register adds the Syntax service to gs.
func (s *Server) Register(gs *grpc.Server) {
	sdesc := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Methods:     []grpc.MethodDesc{},
		Streams:     []grpc.StreamDesc{},
		Metadata:    s.sd.GetFile().GetName(),
	}

	for _, method := range s.sd.GetMethods() {
		md := method
		call, ok := s.methods[md.GetName()]
		if !ok {
			continue
		}
		fullMethod := "/" + ServiceName + "/" + md.GetName()

		sdesc.Methods = append(sdesc.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := dynamic.NewMessage(md.GetInputType())
				if err := dec(in); err != nil {
					return nil, err
				}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					out := dynamic.NewMessage(md.GetOutputType())
					if err := call(ctx, req.(*dynamic.Message), out); err != nil {
						return nil, err
					}
					return out, nil
				}
				if interceptor == nil {
					return handler(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
				return interceptor(ctx, in, info, handler)
			},
		})
	}

	gs.RegisterService(sdesc, s)
}

// NewGRPCServer returns a gRPC server with the service registered and
// request logging installed.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.UnaryInterceptor(logRequests))
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs
}

// Serve handles requests on lis until ctx is cancelled, then stops
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	gs := s.NewGRPCServer()

	errc := make(chan error, 1)
	go func() {
		errc <- gs.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		gs.GracefulStop()
		<-errc
		return nil
	case err := <-errc:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func logRequests(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	id := uuid.New()
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		log.Printf("[%s] %s failed after %s: %v", id, info.FullMethod, time.Since(start), err)
	} else {
		log.Printf("[%s] %s ok in %s", id, info.FullMethod, time.Since(start))
	}
	return resp, err
}
