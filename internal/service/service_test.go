package service_test

import (
	"bytes"
	"context"
	"log"
	"net"
	"os"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/funvibe/sol/internal/definitions"
	"github.com/funvibe/sol/internal/service"
	"github.com/funvibe/sol/internal/term"
	"github.com/funvibe/sol/internal/termcodec"
)

type client struct {
	conn *grpc.ClientConn
	sd   *desc.ServiceDescriptor
}

func startServer(t *testing.T, catalog *definitions.Catalog) *client {
	t.Helper()
	srv, err := service.New(catalog)
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		cancel()
		t.Fatalf("dialing: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	return &client{conn: conn, sd: srv.Descriptor()}
}

func (c *client) call(t *testing.T, method string, fields map[string]interface{}) (*dynamic.Message, error) {
	t.Helper()
	md := c.sd.FindMethodByName(method)
	if md == nil {
		t.Fatalf("no method %s", method)
	}
	req := dynamic.NewMessage(md.GetInputType())
	for name, value := range fields {
		if list, ok := value.([]string); ok {
			for _, item := range list {
				req.AddRepeatedFieldByName(name, item)
			}
			continue
		}
		req.SetFieldByName(name, value)
	}
	resp := dynamic.NewMessage(md.GetOutputType())
	err := c.conn.Invoke(context.Background(), "/"+service.ServiceName+"/"+method, req, resp)
	return resp, err
}

func stringField(t *testing.T, v interface{}) []string {
	t.Helper()
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(string))
	}
	return out
}

func identityCatalog(t *testing.T) *definitions.Catalog {
	t.Helper()
	c := definitions.New()
	if err := c.Add("id", "(A:* (x:A x))"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestLoadSchema(t *testing.T) {
	fd, err := service.LoadSchema()
	if err != nil {
		t.Fatal(err)
	}
	sd := fd.FindService(service.ServiceName)
	if sd == nil {
		t.Fatal("service missing from schema")
	}
	for _, name := range []string{"Parse", "Show", "Encode"} {
		if sd.FindMethodByName(name) == nil {
			t.Errorf("method %s missing", name)
		}
	}
}

func TestParse(t *testing.T) {
	c := startServer(t, identityCatalog(t))

	resp, err := c.call(t, "Parse", map[string]interface{}{"source": "(f x (T:* (v:T v)))"})
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.GetFieldByName("text").(string); got != "(f x id)" {
		t.Errorf("text: got %q", got)
	}
	deps := stringField(t, resp.GetFieldByName("dependencies"))
	if len(deps) != 2 || deps[0] != "f" || deps[1] != "x" {
		t.Errorf("dependencies: got %v", deps)
	}
	if got := resp.GetFieldByName("end_offset").(int32); got != 19 {
		t.Errorf("end_offset: got %d", got)
	}

	tm, err := termcodec.Decode(resp.GetFieldByName("term").([]byte))
	if err != nil {
		t.Fatal(err)
	}
	identity := term.NewLam(term.NewUniverse(), term.NewLam(term.NewVar(0), term.NewVar(0)))
	want := term.Apply(term.NewVar(-1), term.NewVar(-2), identity)
	if !term.Equal(tm, want) {
		t.Errorf("term: got %s, want %s", term.Dump(tm), term.Dump(want))
	}
}

func TestParseAtOffset(t *testing.T) {
	c := startServer(t, nil)

	resp, err := c.call(t, "Parse", map[string]interface{}{"source": "* (a:* a)", "offset": int32(1)})
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.GetFieldByName("text").(string); got != "(a:* a)" {
		t.Errorf("text: got %q", got)
	}
	if got := resp.GetFieldByName("end_offset").(int32); got != 9 {
		t.Errorf("end_offset: got %d", got)
	}
}

func TestParseErrors(t *testing.T) {
	c := startServer(t, nil)

	testCases := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"unterminated", map[string]interface{}{"source": "(f a"}},
		{"invalid", map[string]interface{}{"source": ")"}},
		{"empty", map[string]interface{}{"source": ""}},
		{"bad_offset", map[string]interface{}{"source": "*", "offset": int32(5)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.call(t, "Parse", tc.fields)
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestShow(t *testing.T) {
	c := startServer(t, identityCatalog(t))

	tm := term.Apply(term.NewVar(-1), term.NewLam(term.NewUniverse(), term.NewLam(term.NewVar(0), term.NewVar(0))))
	resp, err := c.call(t, "Show", map[string]interface{}{
		"term":         termcodec.Encode(tm),
		"dependencies": []string{"g"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.GetFieldByName("text").(string); got != "(g id)" {
		t.Errorf("got %q", got)
	}

	// Without dependency names free variables print by position.
	resp, err = c.call(t, "Show", map[string]interface{}{"term": termcodec.Encode(tm)})
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.GetFieldByName("text").(string); got != "(f1 id)" {
		t.Errorf("got %q", got)
	}

	_, err = c.call(t, "Show", map[string]interface{}{"term": []byte{0xff}})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("malformed term: got %v, want InvalidArgument", err)
	}
}

func TestEncode(t *testing.T) {
	c := startServer(t, identityCatalog(t))

	resp, err := c.call(t, "Encode", map[string]interface{}{"source": "(id k)"})
	if err != nil {
		t.Fatal(err)
	}
	tm, err := termcodec.Decode(resp.GetFieldByName("term").([]byte))
	if err != nil {
		t.Fatal(err)
	}
	identity := term.NewLam(term.NewUniverse(), term.NewLam(term.NewVar(0), term.NewVar(0)))
	if want := term.NewApp(identity, term.NewVar(-1)); !term.Equal(tm, want) {
		t.Errorf("got %s, want %s", term.Dump(tm), term.Dump(want))
	}
	if deps := stringField(t, resp.GetFieldByName("dependencies")); len(deps) != 1 || deps[0] != "k" {
		t.Errorf("dependencies: got %v", deps)
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c := startServer(t, nil)
	if _, err := c.call(t, "Parse", map[string]interface{}{"source": "*"}); err != nil {
		t.Fatal(err)
	}
	c.call(t, "Parse", map[string]interface{}{"source": "("})

	lines := regexp.MustCompile(`\[([0-9a-f-]{36})\] /sol\.syntax\.Syntax/Parse (ok|failed)`).FindAllStringSubmatch(buf.String(), -1)
	if len(lines) != 2 {
		t.Fatalf("expected two request lines, got:\n%s", buf.String())
	}
	if lines[0][2] != "ok" || lines[1][2] != "failed" {
		t.Errorf("outcomes: %s, %s", lines[0][2], lines[1][2])
	}
	first, err := uuid.Parse(lines[0][1])
	if err != nil {
		t.Fatal(err)
	}
	second, err := uuid.Parse(lines[1][1])
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("each request should get its own id")
	}
}
