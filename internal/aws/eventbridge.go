package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebTypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"golang.org/x/sync/errgroup"

	"github.com/noelruault/shepherd/internal/core"
)

// discoveryConcurrency bounds the parallel rule and target lookups.
const discoveryConcurrency = 8

// EventBridgeAPI is the subset of the EventBridge client used here.
type EventBridgeAPI interface {
	ListEventBuses(ctx context.Context, params *eventbridge.ListEventBusesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListEventBusesOutput, error)
	ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error)
	ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
}

// ListTriggers returns the event source mappings of fn followed by every
// EventBridge rule that targets it.
func (c *Client) ListTriggers(ctx context.Context, fn core.FunctionSummary) ([]core.TriggerMapping, error) {
	var direct, rules []core.TriggerMapping

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		direct, err = c.listEventSourceMappings(gctx, fn)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = c.listRuleTriggers(gctx, fn)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(direct, rules...), nil
}

// listRuleTriggers scans every bus for rules targeting fn. Failing to list
// the buses aborts; failures on a single bus or rule are logged and skipped.
func (c *Client) listRuleTriggers(ctx context.Context, fn core.FunctionSummary) ([]core.TriggerMapping, error) {
	buses, err := c.listEventBuses(ctx)
	if err != nil {
		return nil, err
	}

	rulesByBus := make([][]ebTypes.Rule, len(buses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(discoveryConcurrency)
	for i, bus := range buses {
		g.Go(func() error {
			rules, err := c.listRules(gctx, bus)
			if err != nil {
				c.log().Warn("skipping event bus", "bus", bus, "error", err)
				return nil
			}
			rulesByBus[i] = rules
			return nil
		})
	}
	_ = g.Wait()

	var rules []ebTypes.Rule
	for _, r := range rulesByBus {
		rules = append(rules, r...)
	}

	matched := make([]bool, len(rules))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(discoveryConcurrency)
	for i, rule := range rules {
		g.Go(func() error {
			targets, err := c.listTargets(gctx, rule)
			if err != nil {
				c.log().Warn("skipping rule", "rule", getString(rule.Name), "error", err)
				return nil
			}
			matched[i] = targetsFunction(targets, fn.ARN)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var triggers []core.TriggerMapping
	for i, rule := range rules {
		if !matched[i] {
			continue
		}
		triggers = append(triggers, core.BusTrigger{
			RuleName: getString(rule.Name),
			EventBus: getString(rule.EventBusName),
			Status:   core.ParseTriggerState(string(rule.State)),
		})
	}
	return triggers, nil
}

func (c *Client) listEventBuses(ctx context.Context) ([]string, error) {
	var buses []string
	var nextToken *string
	for {
		out, err := c.EventBridge.ListEventBuses(ctx, &eventbridge.ListEventBusesInput{NextToken: nextToken})
		if err != nil {
			return nil, wrapError("list event buses", err)
		}
		for _, bus := range out.EventBuses {
			if name := getString(bus.Name); name != "" {
				buses = append(buses, name)
			}
		}
		nextToken = out.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}
	return buses, nil
}

func (c *Client) listRules(ctx context.Context, bus string) ([]ebTypes.Rule, error) {
	var rules []ebTypes.Rule
	var nextToken *string
	for {
		out, err := c.EventBridge.ListRules(ctx, &eventbridge.ListRulesInput{
			EventBusName: aws.String(bus),
			NextToken:    nextToken,
		})
		if err != nil {
			return nil, wrapError("list rules", err)
		}
		for _, rule := range out.Rules {
			if rule.EventBusName == nil {
				rule.EventBusName = aws.String(bus)
			}
			rules = append(rules, rule)
		}
		nextToken = out.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}
	return rules, nil
}

func (c *Client) listTargets(ctx context.Context, rule ebTypes.Rule) ([]ebTypes.Target, error) {
	var targets []ebTypes.Target
	var nextToken *string
	for {
		out, err := c.EventBridge.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{
			Rule:         rule.Name,
			EventBusName: rule.EventBusName,
			NextToken:    nextToken,
		})
		if err != nil {
			return nil, wrapError("list targets by rule", err)
		}
		targets = append(targets, out.Targets...)
		nextToken = out.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}
	return targets, nil
}

func targetsFunction(targets []ebTypes.Target, functionARN string) bool {
	for _, t := range targets {
		if unqualifiedARN(getString(t.Arn)) == functionARN {
			return true
		}
	}
	return false
}

// unqualifiedARN strips an alias or version qualifier from a Lambda function
// ARN (arn:aws:lambda:region:account:function:name[:qualifier]).
func unqualifiedARN(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) == 8 && parts[2] == "lambda" && parts[5] == "function" {
		return strings.Join(parts[:7], ":")
	}
	return arn
}
