// Package worker runs the dispatch loops that claim job ids from the
// shared queue and drive each claimed job through the text pipeline to a
// terminal state. A background reaper requeues jobs whose processing
// lease expired because their worker died mid-job.
package worker
