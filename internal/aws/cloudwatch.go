package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/noelruault/shepherd/internal/core"
)

const (
	metricsWindow  = 24 * time.Hour
	metricsPeriod  = 60 * time.Second
	metricsBuckets = int(metricsWindow / metricsPeriod)
)

// CloudWatchAPI is the subset of the CloudWatch client used here.
type CloudWatchAPI interface {
	cloudwatch.GetMetricDataAPIClient
}

type metricQuery struct {
	id     string
	metric string
	stat   string
	label  string
}

// lambdaMetrics lists the dashboard series in display order.
var lambdaMetrics = []metricQuery{
	{id: "invocations", metric: "Invocations", stat: "Sum", label: "Invocations"},
	{id: "errors", metric: "Errors", stat: "Sum", label: "Errors"},
	{id: "duration", metric: "Duration", stat: "Average", label: "Duration (ms)"},
	{id: "concurrent_executions", metric: "ConcurrentExecutions", stat: "Maximum", label: "Concurrent executions"},
}

// ListMetrics returns the last 24 hours of the standard Lambda metrics for
// fn, one point per minute. Minutes without data are reported as zero.
func (c *Client) ListMetrics(ctx context.Context, fn core.FunctionSummary) ([]core.MetricSeries, error) {
	start, end := metricRange(time.Now())

	queries := make([]cwTypes.MetricDataQuery, 0, len(lambdaMetrics))
	for _, q := range lambdaMetrics {
		queries = append(queries, buildMetricQuery(q, fn.Name))
	}

	paginator := cloudwatch.NewGetMetricDataPaginator(c.CloudWatch, &cloudwatch.GetMetricDataInput{
		MetricDataQueries: queries,
		StartTime:         aws.Time(start),
		EndTime:           aws.Time(end),
		ScanBy:            cwTypes.ScanByTimestampAscending,
	})

	type points struct {
		timestamps []time.Time
		values     []float64
	}
	results := make(map[string]*points, len(lambdaMetrics))
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("get metric data", err)
		}
		for _, r := range page.MetricDataResults {
			id := getString(r.Id)
			p, ok := results[id]
			if !ok {
				p = &points{}
				results[id] = p
			}
			n := min(len(r.Timestamps), len(r.Values))
			p.timestamps = append(p.timestamps, r.Timestamps[:n]...)
			p.values = append(p.values, r.Values[:n]...)
		}
	}

	series := make([]core.MetricSeries, 0, len(lambdaMetrics))
	for _, q := range lambdaMetrics {
		var ts []time.Time
		var vs []float64
		if p, ok := results[q.id]; ok {
			ts, vs = p.timestamps, p.values
		}
		series = append(series, bucketSeries(q, start, metricsBuckets, metricsPeriod, ts, vs))
	}
	return series, nil
}

// metricRange returns the window ending at the last full period before now.
func metricRange(now time.Time) (time.Time, time.Time) {
	end := now.UTC().Truncate(metricsPeriod)
	return end.Add(-metricsWindow), end
}

func buildMetricQuery(q metricQuery, functionName string) cwTypes.MetricDataQuery {
	return cwTypes.MetricDataQuery{
		Id:    aws.String(q.id),
		Label: aws.String(q.label),
		MetricStat: &cwTypes.MetricStat{
			Metric: &cwTypes.Metric{
				Namespace:  aws.String("AWS/Lambda"),
				MetricName: aws.String(q.metric),
				Dimensions: []cwTypes.Dimension{
					{
						Name:  aws.String("FunctionName"),
						Value: aws.String(functionName),
					},
				},
			},
			Period: aws.Int32(int32(metricsPeriod / time.Second)),
			Stat:   aws.String(q.stat),
		},
	}
}

// bucketSeries lays datapoints onto a fixed grid of buckets starting at
// start. Points outside the grid are dropped and empty buckets stay zero.
func bucketSeries(q metricQuery, start time.Time, buckets int, period time.Duration, timestamps []time.Time, values []float64) core.MetricSeries {
	series := core.MetricSeries{
		Name:       q.id,
		Label:      q.label,
		Timestamps: make([]int64, buckets),
		Values:     make([]float64, buckets),
	}
	for i := range series.Timestamps {
		series.Timestamps[i] = start.Add(time.Duration(i) * period).Unix()
	}

	for i, t := range timestamps {
		if i >= len(values) {
			break
		}
		if t.Before(start) {
			continue
		}
		idx := int(t.Sub(start) / period)
		if idx >= buckets {
			continue
		}
		series.Values[idx] = values[i]
	}
	return series
}
