// Package dataproc submits the bulk warehouse-load job to a managed
// Dataproc cluster.
package dataproc

import (
	"context"
	"fmt"
	"log/slog"

	dataprocapi "google.golang.org/api/dataproc/v1"
	"google.golang.org/api/option"
)

// Trigger submits the configured PySpark bulk-load job. It implements
// warehouse.BulkLoader: submission is acknowledged, not awaited.
type Trigger struct {
	projectID string
	region    string
	cluster   string
	mainURI   string
	service   *dataprocapi.Service
	logger    *slog.Logger
}

// NewTrigger dials the regional Dataproc endpoint. Extra options are
// appended, which lets tests point the service at a local server.
func NewTrigger(ctx context.Context, projectID, region, cluster, mainURI string, logger *slog.Logger, opts ...option.ClientOption) (*Trigger, error) {
	endpoint := fmt.Sprintf("https://%s-dataproc.googleapis.com/", region)
	opts = append([]option.ClientOption{option.WithEndpoint(endpoint)}, opts...)

	service, err := dataprocapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create dataproc service: %w", err)
	}
	return &Trigger{
		projectID: projectID,
		region:    region,
		cluster:   cluster,
		mainURI:   mainURI,
		service:   service,
		logger:    logger,
	}, nil
}

// LoadNewDocuments submits the bulk-load job and returns its id once the
// submission is acknowledged.
func (t *Trigger) LoadNewDocuments(ctx context.Context) (string, error) {
	req := &dataprocapi.SubmitJobRequest{
		Job: &dataprocapi.Job{
			Placement:  &dataprocapi.JobPlacement{ClusterName: t.cluster},
			PysparkJob: &dataprocapi.PySparkJob{MainPythonFileUri: t.mainURI},
		},
	}

	job, err := t.service.Projects.Regions.Jobs.Submit(t.projectID, t.region, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("submit bulk-load job: %w", err)
	}
	if job.Reference == nil || job.Reference.JobId == "" {
		return "", fmt.Errorf("submit bulk-load job: response carried no job id")
	}

	t.logger.Info("bulk-load job submitted", "job_id", job.Reference.JobId, "cluster", t.cluster)
	return job.Reference.JobId, nil
}
