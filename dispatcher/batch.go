package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/mapper"
	"github.com/quocvan1999/auto-api-pusher/session"
	"github.com/quocvan1999/auto-api-pusher/types"
)

type IBatchClient interface {
	Run(ctx context.Context, rowIndexes []int) ([]types.SendResult, error)
	RetryRow(ctx context.Context, index int) (types.SendResult, error)
	RetryFailed(ctx context.Context) ([]types.SendResult, error)
}

type BatchClient struct {
	Target        types.RequestTarget
	Mappings      []types.FieldMapping
	Delay         time.Duration
	PayloadClient mapper.IPayloadClient
	Sender        IHttpSender
	Store         session.IStore
	// OnResult is called after every row, in send order.
	OnResult func(result types.SendResult)
	Logger   *logrus.Logger
}

func NewBatchClient(target types.RequestTarget, mappings []types.FieldMapping, delay time.Duration, payloadClient mapper.IPayloadClient, sender IHttpSender, store session.IStore, logger *logrus.Logger) *BatchClient {
	return &BatchClient{
		Target:        target,
		Mappings:      mappings,
		Delay:         delay,
		PayloadClient: payloadClient,
		Sender:        sender,
		Store:         store,
		Logger:        logger,
	}
}

// Run sends the given rows, or every row when rowIndexes is nil, strictly one
// after another. Cancelling ctx stops the batch before the next row starts; a
// request already in flight completes and its result is recorded.
func (batchClient *BatchClient) Run(ctx context.Context, rowIndexes []int) ([]types.SendResult, error) {
	indexes, err := batchClient.resolveIndexes(rowIndexes)
	if err != nil {
		return nil, err
	}

	results := make([]types.SendResult, 0, len(indexes))
	batchClient.Logger.Infof("Sending %d rows to %s %s", len(indexes), batchClient.Target.Method, batchClient.Target.URL)

	for position, index := range indexes {
		if err := ctx.Err(); err != nil {
			batchClient.Logger.Warnf("Batch stopped before row %d, %d of %d rows sent", index, position, len(indexes))
			return results, err
		}

		result, err := batchClient.sendRow(ctx, index)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if position < len(indexes)-1 && batchClient.Delay > 0 {
			if err := wait(ctx, batchClient.Delay); err != nil {
				batchClient.Logger.Warnf("Batch stopped after row %d, %d of %d rows sent", index, position+1, len(indexes))
				return results, err
			}
		}
	}

	batchClient.logSummary(results)
	return results, nil
}

// RetryRow re-sends one row outside of any running batch, using its current, possibly edited, values.
func (batchClient *BatchClient) RetryRow(ctx context.Context, index int) (types.SendResult, error) {
	if _, err := batchClient.resolveIndexes([]int{index}); err != nil {
		return types.SendResult{RowIndex: index}, err
	}
	batchClient.Logger.Infof("Retrying row %d", index)
	return batchClient.sendRow(ctx, index)
}

func (batchClient *BatchClient) RetryFailed(ctx context.Context) ([]types.SendResult, error) {
	failed, err := batchClient.Store.FailedRows()
	if err != nil {
		return nil, err
	}
	if len(failed) == 0 {
		batchClient.Logger.Info("No failed rows to retry")
		return []types.SendResult{}, nil
	}
	return batchClient.Run(ctx, failed)
}

func (batchClient *BatchClient) sendRow(ctx context.Context, index int) (types.SendResult, error) {
	row, err := batchClient.Store.Row(index)
	if err != nil {
		return types.SendResult{RowIndex: index}, err
	}

	body := batchClient.PayloadClient.ConstructPayload(row, batchClient.Mappings)

	started := time.Now()
	response, sendErr := batchClient.Sender.Send(context.WithoutCancel(ctx), batchClient.Target, body)

	result := types.SendResult{
		RowIndex: index,
		Duration: time.Since(started),
		SentAt:   started,
		Attempts: 1,
	}
	if response != nil {
		result.StatusCode = response.StatusCode
		result.ResponsePreview = response.Preview
		result.Attempts = max(response.Attempts, 1)
	}

	if sendErr != nil {
		result.Error = sendErr.Error()
		batchClient.Logger.Warnf("Row %d failed: %v", index, sendErr)
	} else if !IsSuccessStatusCode(result.StatusCode) {
		batchClient.Logger.Warnf("Row %d returned status %d", index, result.StatusCode)
	} else {
		result.Ok = true
		batchClient.Logger.Debugf("Row %d returned status %d", index, result.StatusCode)
	}

	if err := batchClient.Store.SaveResult(result); err != nil {
		return result, err
	}
	stored, found, err := batchClient.Store.Result(index)
	if err != nil {
		return result, err
	}
	if found {
		result = stored
	}

	if batchClient.OnResult != nil {
		batchClient.OnResult(result)
	}
	return result, nil
}

func (batchClient *BatchClient) resolveIndexes(rowIndexes []int) ([]int, error) {
	count, err := batchClient.Store.RowCount()
	if err != nil {
		return nil, err
	}

	if rowIndexes == nil {
		indexes := make([]int, count)
		for index := range indexes {
			indexes[index] = index
		}
		return indexes, nil
	}

	for _, index := range rowIndexes {
		if index < 0 || index >= count {
			return nil, fmt.Errorf("row %d is out of range, the table has %d rows", index, count)
		}
	}
	return rowIndexes, nil
}

func (batchClient *BatchClient) logSummary(results []types.SendResult) {
	failed := 0
	for _, result := range results {
		if !result.Ok {
			failed++
		}
	}
	if failed > 0 {
		batchClient.Logger.Warnf("Batch finished: %d sent, %d failed", len(results), failed)
		return
	}
	batchClient.Logger.Infof("Batch finished: %d sent, all succeeded", len(results))
}

func wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
