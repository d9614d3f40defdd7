// Package warehouse loads raw match JSON documents from the object store
// into the analytics warehouse table.
package warehouse

import (
	"context"
	"time"
)

// Document is one raw match file stored in the warehouse, content verbatim.
type Document struct {
	FileName        string    `gorm:"column:file_name;primaryKey"`
	Content         string    `gorm:"column:content"`
	UploadTimestamp time.Time `gorm:"column:upload_timestamp"`
}

// TableName names the warehouse table.
func (Document) TableName() string {
	return "raw_match_documents"
}

// BulkLoader is the batch-compute equivalent of Ingestor.Run: an anti-join
// of new documents against the warehouse table followed by an append. The
// managed implementation runs outside this process and is driven through
// the dataproc adapter; the returned id identifies the submitted job, not
// its completion.
type BulkLoader interface {
	LoadNewDocuments(ctx context.Context) (jobID string, err error)
}
