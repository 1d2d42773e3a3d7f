package parallel

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repofleet/internal/discovery"
)

const (
	repositorySlugLogFieldNameConstant   = "slug"
	workFailureLogMessageConstant        = "repository work failed"
	defaultConcurrencyLimitConstant      = 8
)

// Outcome captures the tri-state result of one unit of repository work.
type Outcome[ResultType any] struct {
	value   ResultType
	skipped bool
	failure error
}

// Success wraps a produced value.
func Success[ResultType any](value ResultType) Outcome[ResultType] {
	return Outcome[ResultType]{value: value}
}

// Skip marks work that intentionally produced nothing.
func Skip[ResultType any]() Outcome[ResultType] {
	return Outcome[ResultType]{skipped: true}
}

// Failure wraps a per-repository failure.
func Failure[ResultType any](failure error) Outcome[ResultType] {
	return Outcome[ResultType]{failure: failure}
}

// Value returns the produced value when the outcome succeeded.
func (outcome Outcome[ResultType]) Value() (ResultType, bool) {
	if outcome.skipped || outcome.failure != nil {
		var zeroValue ResultType
		return zeroValue, false
	}
	return outcome.value, true
}

// Skipped reports whether the work intentionally produced nothing.
func (outcome Outcome[ResultType]) Skipped() bool {
	return outcome.skipped
}

// Failure returns the per-repository failure, if any.
func (outcome Outcome[ResultType]) Failure() error {
	return outcome.failure
}

// DescriptorOutcome pairs a repository descriptor with the outcome its work produced.
type DescriptorOutcome[ResultType any] struct {
	Descriptor discovery.RepositoryDescriptor
	Outcome    Outcome[ResultType]
}

// WorkFunc is one unit of repository work dispatched by the executor.
type WorkFunc[ResultType any] func(executionContext context.Context, descriptor discovery.RepositoryDescriptor) Outcome[ResultType]

// Executor fans repository work out across a bounded set of goroutines.
//
// A failure inside one unit of work is logged with the repository slug and
// never aborts sibling work or the overall call.
type Executor struct {
	logger           *zap.Logger
	concurrencyLimit int
}

// NewExecutor constructs an Executor. A non-positive concurrency limit falls back to the default.
func NewExecutor(logger *zap.Logger, concurrencyLimit int) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrencyLimit <= 0 {
		concurrencyLimit = defaultConcurrencyLimitConstant
	}
	return &Executor{logger: logger, concurrencyLimit: concurrencyLimit}
}

// Execute applies work to every descriptor concurrently and collects successful values.
//
// Skipped outcomes contribute nothing. Failed outcomes are logged and discarded, so the
// returned slice holds one value per successful repository in no particular order.
func Execute[ResultType any](executionContext context.Context, executor *Executor, descriptors []discovery.RepositoryDescriptor, work WorkFunc[ResultType]) []ResultType {
	var collectedValues []ResultType
	var collectionMutex sync.Mutex

	waitGroup, groupContext := errgroup.WithContext(executionContext)
	waitGroup.SetLimit(executor.concurrencyLimit)

	for _, descriptor := range descriptors {
		repositoryDescriptor := descriptor
		waitGroup.Go(func() error {
			outcome := work(groupContext, repositoryDescriptor)
			if outcomeFailure := outcome.Failure(); outcomeFailure != nil {
				executor.logger.Error(workFailureLogMessageConstant,
					zap.String(repositorySlugLogFieldNameConstant, repositoryDescriptor.Slug),
					zap.Error(outcomeFailure))
				return nil
			}

			if producedValue, produced := outcome.Value(); produced {
				collectionMutex.Lock()
				collectedValues = append(collectedValues, producedValue)
				collectionMutex.Unlock()
			}
			return nil
		})
	}

	_ = waitGroup.Wait()
	return collectedValues
}

// ExecuteAll applies work to every descriptor concurrently and preserves one outcome per input.
//
// Unlike Execute, failed and skipped outcomes remain visible to the caller, positionally
// aligned with the input descriptors.
func ExecuteAll[ResultType any](executionContext context.Context, executor *Executor, descriptors []discovery.RepositoryDescriptor, work WorkFunc[ResultType]) []DescriptorOutcome[ResultType] {
	outcomes := make([]DescriptorOutcome[ResultType], len(descriptors))

	waitGroup, groupContext := errgroup.WithContext(executionContext)
	waitGroup.SetLimit(executor.concurrencyLimit)

	for descriptorIndex, descriptor := range descriptors {
		outcomeIndex := descriptorIndex
		repositoryDescriptor := descriptor
		waitGroup.Go(func() error {
			outcome := work(groupContext, repositoryDescriptor)
			if outcomeFailure := outcome.Failure(); outcomeFailure != nil {
				executor.logger.Error(workFailureLogMessageConstant,
					zap.String(repositorySlugLogFieldNameConstant, repositoryDescriptor.Slug),
					zap.Error(outcomeFailure))
			}
			outcomes[outcomeIndex] = DescriptorOutcome[ResultType]{Descriptor: repositoryDescriptor, Outcome: outcome}
			return nil
		})
	}

	_ = waitGroup.Wait()
	return outcomes
}

// ExecuteWithState applies work to every descriptor concurrently and merges contributions
// into one shared accumulator.
//
// The work function performs its I/O without holding the lock and returns the contribution
// as a closure; the executor then applies that closure to the shared state under a mutex
// held only for the duration of the update.
func ExecuteWithState[StateType any](executionContext context.Context, executor *Executor, descriptors []discovery.RepositoryDescriptor, sharedState *StateType, work func(executionContext context.Context, descriptor discovery.RepositoryDescriptor) (func(state *StateType), error)) {
	var stateMutex sync.Mutex

	waitGroup, groupContext := errgroup.WithContext(executionContext)
	waitGroup.SetLimit(executor.concurrencyLimit)

	for _, descriptor := range descriptors {
		repositoryDescriptor := descriptor
		waitGroup.Go(func() error {
			applyContribution, workFailure := work(groupContext, repositoryDescriptor)
			if workFailure != nil {
				executor.logger.Error(workFailureLogMessageConstant,
					zap.String(repositorySlugLogFieldNameConstant, repositoryDescriptor.Slug),
					zap.Error(workFailure))
				return nil
			}
			if applyContribution == nil {
				return nil
			}

			stateMutex.Lock()
			applyContribution(sharedState)
			stateMutex.Unlock()
			return nil
		})
	}

	_ = waitGroup.Wait()
}
