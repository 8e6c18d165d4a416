// Package export writes project snapshots as JSON documents.
package export

import (
	"context"
	"encoding/json"
	"io"
	"path"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/service/gcs"
)

// ObjectWriter stores whole objects in a bucket
type ObjectWriter interface {
	Write(ctx context.Context, bucket, object string, data []byte, contentType string) error
}

// GCSExporter writes each snapshot to <prefix>/<projectID>/<timestamp>.json
type GCSExporter struct {
	writer ObjectWriter
	bucket string
	prefix string
}

var _ interfaces.SnapshotExporter = &GCSExporter{}

// NewGCSExporter creates an exporter writing under the given gs:// location
func NewGCSExporter(writer ObjectWriter, location string) (*GCSExporter, error) {
	bucket, prefix, err := gcs.ParseURL(location)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid export location")
	}
	return &GCSExporter{writer: writer, bucket: bucket, prefix: prefix}, nil
}

func (e *GCSExporter) Export(ctx context.Context, snapshot *model.ProjectSnapshot) (string, error) {
	data, err := encode(snapshot)
	if err != nil {
		return "", err
	}

	object := path.Join(e.prefix, snapshot.ProjectID.String(), snapshot.CapturedAt.UTC().Format("20060102T150405Z")+".json")
	if err := e.writer.Write(ctx, e.bucket, object, data, "application/json"); err != nil {
		return "", goerr.Wrap(err, "failed to upload snapshot", goerr.V(model.ProjectIDKey, snapshot.ProjectID))
	}

	return gcs.URL(e.bucket, object), nil
}

// WriterExporter writes snapshots to an io.Writer such as stdout
type WriterExporter struct {
	w    io.Writer
	name string
}

var _ interfaces.SnapshotExporter = &WriterExporter{}

// NewWriterExporter creates an exporter writing to w. name is returned as the location.
func NewWriterExporter(w io.Writer, name string) *WriterExporter {
	return &WriterExporter{w: w, name: name}
}

func (e *WriterExporter) Export(ctx context.Context, snapshot *model.ProjectSnapshot) (string, error) {
	data, err := encode(snapshot)
	if err != nil {
		return "", err
	}
	if _, err := e.w.Write(append(data, '\n')); err != nil {
		return "", goerr.Wrap(err, "failed to write snapshot", goerr.V(model.ProjectIDKey, snapshot.ProjectID))
	}
	return e.name, nil
}

func encode(snapshot *model.ProjectSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode snapshot", goerr.V(model.ProjectIDKey, snapshot.ProjectID))
	}
	return data, nil
}
