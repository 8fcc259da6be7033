package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/noelruault/shepherd/internal/core"
)

const listFunctionsPageSize = 50

var (
	_ core.Provider      = (*Client)(nil)
	_ core.ConsoleOpener = (*Client)(nil)
)

// LambdaAPI is the subset of the Lambda client used here.
type LambdaAPI interface {
	lambda.ListFunctionsAPIClient
	lambda.ListEventSourceMappingsAPIClient
}

// ListFunctions retrieves every Lambda function in the region
func (c *Client) ListFunctions(ctx context.Context) ([]core.FunctionSummary, error) {
	paginator := lambda.NewListFunctionsPaginator(c.Lambda, &lambda.ListFunctionsInput{
		MaxItems: aws.Int32(listFunctionsPageSize),
	})

	var functions []core.FunctionSummary
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("list functions", err)
		}
		for _, fn := range page.Functions {
			functions = append(functions, toFunctionSummary(fn))
		}
	}

	c.log().Debug("listed functions", "count", len(functions))
	return functions, nil
}

// listEventSourceMappings returns the direct triggers configured on fn
func (c *Client) listEventSourceMappings(ctx context.Context, fn core.FunctionSummary) ([]core.TriggerMapping, error) {
	paginator := lambda.NewListEventSourceMappingsPaginator(c.Lambda, &lambda.ListEventSourceMappingsInput{
		FunctionName: aws.String(fn.Name),
	})

	var triggers []core.TriggerMapping
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("list event source mappings", err)
		}
		for _, m := range page.EventSourceMappings {
			if trigger, ok := toTriggerMapping(m); ok {
				triggers = append(triggers, trigger)
			}
		}
	}
	return triggers, nil
}

func toFunctionSummary(fn lambdaTypes.FunctionConfiguration) core.FunctionSummary {
	return core.FunctionSummary{
		Name:       getString(fn.FunctionName),
		ARN:        getString(fn.FunctionArn),
		Runtime:    runtimeName(fn),
		MemorySize: getInt32(fn.MemorySize),
		Timeout:    getInt32(fn.Timeout),
	}
}

// runtimeName falls back to the package type for container image functions,
// which have no runtime.
func runtimeName(fn lambdaTypes.FunctionConfiguration) string {
	if fn.Runtime != "" {
		return string(fn.Runtime)
	}
	if fn.PackageType != "" {
		return strings.ToLower(string(fn.PackageType))
	}
	return "-"
}

// toTriggerMapping converts an event source mapping by the service named in
// its source ARN. Sources other than SQS, Kinesis, DynamoDB and EventBridge
// are skipped.
func toTriggerMapping(m lambdaTypes.EventSourceMappingConfiguration) (core.TriggerMapping, bool) {
	sourceARN := getString(m.EventSourceArn)
	parts := strings.Split(sourceARN, ":")
	if len(parts) < 6 {
		return nil, false
	}
	service, resource := parts[2], strings.Join(parts[5:], ":")
	state := core.ParseTriggerState(getString(m.State))
	size := getInt32(m.BatchSize)
	window := getInt32(m.MaximumBatchingWindowInSeconds)

	switch service {
	case "sqs":
		return core.QueueTrigger{QueueName: resource, Size: size, Window: window, Status: state}, true
	case "kinesis":
		return core.StreamTrigger{
			Source:     "Kinesis",
			StreamName: strings.TrimPrefix(resource, "stream/"),
			Size:       size,
			Window:     window,
			Status:     state,
		}, true
	case "dynamodb":
		// table/<name>/stream/<label>
		name := resource
		if segments := strings.Split(resource, "/"); len(segments) >= 2 && segments[0] == "table" {
			name = segments[1]
		}
		return core.StreamTrigger{Source: "DynamoDB", StreamName: name, Size: size, Window: window, Status: state}, true
	case "events":
		// rule/<bus>/<rule> or rule/<rule>
		segments := strings.Split(strings.TrimPrefix(resource, "rule/"), "/")
		trigger := core.BusTrigger{RuleName: segments[len(segments)-1], Status: state}
		if len(segments) > 1 {
			trigger.EventBus = segments[0]
		}
		return trigger, true
	default:
		return nil, false
	}
}

func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func getInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
