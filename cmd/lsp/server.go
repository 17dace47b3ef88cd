package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/funvibe/sol/internal/definitions"
	"github.com/funvibe/sol/internal/syntax"
)

// errExit stops the read loop after an exit notification.
var errExit = errors.New("exit requested")

// Language Server implementation
type LanguageServer struct {
	documents map[string]*DocumentState // URI -> document state
	mu        sync.RWMutex              // Mutex to protect the documents map
	writer    io.Writer                 // Output stream for JSON-RPC responses
	rootPath  string                    // Workspace root reported by the client

	catalog *definitions.Catalog
	aliases map[string]syntax.Node

	shutdown bool // a shutdown request came before exit
}

func NewLanguageServer(writer io.Writer, catalog *definitions.Catalog) *LanguageServer {
	if writer == nil {
		writer = os.Stdout
	}
	if catalog == nil {
		catalog = definitions.New()
	}
	return &LanguageServer{
		documents: make(map[string]*DocumentState),
		writer:    writer,
		catalog:   catalog,
		aliases:   catalog.Aliases(),
	}
}

// Start reads framed messages from r until it is exhausted or the client
// sends exit.
func (s *LanguageServer) Start(r io.Reader) {
	// Use a bufio.Reader instead of Scanner to handle arbitrary buffer sizes and raw reads
	reader := bufio.NewReader(r)

	for {
		// Read header line
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Error reading header: %v", err)
			}
			return
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		contentLength, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("Error parsing Content-Length: %v", err)
			continue
		}

		// Skip any other headers up to the empty separator line.
		for {
			sep, err := reader.ReadString('\n')
			if err != nil {
				log.Printf("Error reading separator: %v", err)
				return
			}
			if strings.TrimRight(sep, "\r\n") == "" {
				break
			}
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("Error reading content: %v", err)
			return
		}

		if err := s.handleMessage(content); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Printf("Error handling message: %v", err)
		}
	}
}

// ExitCode is the process status after Start returns: 0 only when the
// client asked for shutdown first.
func (s *LanguageServer) ExitCode() int {
	if s.shutdown {
		return 0
	}
	return 1
}

type messageHeader struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method"`
}

func (s *LanguageServer) handleMessage(content []byte) error {
	var header messageHeader
	if err := json.Unmarshal(content, &header); err != nil {
		return fmt.Errorf("failed to unmarshal message: %v", err)
	}

	log.Printf("Received %s (id %v)", header.Method, header.ID)

	// Requests carry an ID, notifications don't
	if header.ID != nil {
		return s.handleRequest(header, content)
	}
	return s.handleNotification(header, content)
}

func (s *LanguageServer) handleRequest(header messageHeader, content []byte) error {
	switch header.Method {
	case "initialize":
		var params InitializeParams
		if err := json.Unmarshal(content, &RequestMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleInitialize(header.ID, params)

	case "shutdown":
		return s.handleShutdown(header.ID)

	case "textDocument/hover":
		var params HoverParams
		if err := json.Unmarshal(content, &RequestMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleHover(header.ID, params)

	case "textDocument/formatting":
		var params DocumentFormattingParams
		if err := json.Unmarshal(content, &RequestMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleFormatting(header.ID, params)

	default:
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      header.ID,
			Error: &Error{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", header.Method),
			},
		})
	}
}

func (s *LanguageServer) handleNotification(header messageHeader, content []byte) error {
	switch header.Method {
	case "initialized":
		return nil

	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(content, &NotificationMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleDidOpen(params)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(content, &NotificationMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleDidChange(params)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(content, &NotificationMessage{Params: &params}); err != nil {
			return err
		}
		return s.handleDidClose(params)

	case "exit":
		return errExit

	default:
		// Unknown notification, ignore
		return nil
	}
}

func (s *LanguageServer) sendResponse(response ResponseMessage) error {
	return s.sendMessage(response)
}

func (s *LanguageServer) sendNotification(notification NotificationMessage) error {
	return s.sendMessage(notification)
}

func (s *LanguageServer) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}
