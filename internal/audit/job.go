package audit

import (
	"context"
)

// Job adapts the auditor to the worker's scheduled job interface. The
// scheduled run always audits every vendor.
type Job struct {
	auditor *Auditor
}

func NewJob(auditor *Auditor) *Job {
	return &Job{auditor: auditor}
}

func (j *Job) Name() string { return "vendor_id_reconciliation" }

func (j *Job) Run(ctx context.Context) error {
	_, err := j.auditor.Run(ctx, nil)
	return err
}
