package service

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/reader"
	"github.com/funvibe/sol/internal/termcodec"
)

func (s *Server) read(source string, offset int) (*reader.Result, error) {
	if offset < 0 || offset > len(source) {
		return nil, status.Errorf(codes.InvalidArgument, "offset %d outside source of length %d", offset, len(source))
	}
	res, err := reader.ParseWithAliases(source, offset, s.aliases)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return res, nil
}

func (s *Server) parse(ctx context.Context, req, resp *dynamic.Message) error {
	source, _ := req.GetFieldByName("source").(string)
	offset, _ := req.GetFieldByName("offset").(int32)

	res, err := s.read(source, int(offset))
	if err != nil {
		return err
	}

	p := &printer.Printer{Lookup: s.catalog.Lookup, FreeNames: res.Dependencies, Reserved: s.catalog.Names()}
	resp.SetFieldByName("term", termcodec.Encode(res.Term))
	setStrings(resp, "dependencies", res.Dependencies)
	resp.SetFieldByName("end_offset", int32(res.EndOffset))
	resp.SetFieldByName("text", p.Print(res.Term))
	return nil
}

func (s *Server) show(ctx context.Context, req, resp *dynamic.Message) error {
	data, _ := req.GetFieldByName("term").([]byte)
	t, err := termcodec.Decode(data)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	deps, err := stringList(req.GetFieldByName("dependencies"))
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	p := &printer.Printer{Lookup: s.catalog.Lookup, FreeNames: deps, Reserved: s.catalog.Names()}
	resp.SetFieldByName("text", p.Print(t))
	return nil
}

func (s *Server) encode(ctx context.Context, req, resp *dynamic.Message) error {
	source, _ := req.GetFieldByName("source").(string)
	res, err := s.read(source, 0)
	if err != nil {
		return err
	}

	resp.SetFieldByName("term", termcodec.Encode(res.Term))
	setStrings(resp, "dependencies", res.Dependencies)
	return nil
}

func setStrings(msg *dynamic.Message, field string, values []string) {
	for _, v := range values {
		msg.AddRepeatedFieldByName(field, v)
	}
}

// stringList converts a repeated string field as returned by
// dynamic.Message.
func stringList(v interface{}) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}
