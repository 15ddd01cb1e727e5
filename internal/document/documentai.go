package document

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DocumentAIConfig names an online Document AI processor.
type DocumentAIConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
}

type processClient interface {
	ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest, opts ...gax.CallOption) (*documentaipb.ProcessResponse, error)
	Close() error
}

// DocumentAI extracts PDF text with a Document AI OCR processor.
type DocumentAI struct {
	client    processClient
	processor string
	log       *zap.Logger
}

// NewDocumentAI dials the regional Document AI endpoint with application
// default credentials.
func NewDocumentAI(ctx context.Context, cfg DocumentAIConfig, log *zap.Logger, opts ...option.ClientOption) (*DocumentAI, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("document ai: project and processor id are required")
	}
	location := cfg.Location
	if location == "" {
		location = "us"
	}

	opts = append([]option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", location)),
	}, opts...)

	c, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}
	return newDocumentAI(c, processorName(cfg.ProjectID, location, cfg.ProcessorID), log), nil
}

func newDocumentAI(c processClient, processor string, log *zap.Logger) *DocumentAI {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentAI{client: c, processor: processor, log: log}
}

func processorName(project, location, processor string) string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", project, location, processor)
}

func (d *DocumentAI) ExtractText(ctx context.Context, doc Document) string {
	if doc.MimeType != MimePDF || len(doc.Data) == 0 {
		return ""
	}

	resp, err := d.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: d.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  doc.Data,
				MimeType: doc.MimeType,
			},
		},
	})
	if err != nil {
		d.log.Warn("documentai ProcessDocument failed", zap.String("document", doc.Name), zap.Error(err))
		return ""
	}
	if resp == nil || resp.GetDocument() == nil {
		return ""
	}
	return resp.GetDocument().GetText()
}

// Close releases the gRPC connection.
func (d *DocumentAI) Close() error {
	return d.client.Close()
}
