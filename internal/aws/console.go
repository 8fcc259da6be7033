package aws

import (
	"context"
	"fmt"
	"net/url"

	"github.com/skratchdot/open-golang/open"

	"github.com/noelruault/shepherd/internal/core"
)

// openURL is swapped in tests.
var openURL = open.Start

// ConsoleURL returns the AWS console page for a function
func ConsoleURL(region, functionName string) string {
	return fmt.Sprintf("https://%s.console.aws.amazon.com/lambda/home?region=%s#/functions/%s",
		region, url.QueryEscape(region), url.PathEscape(functionName))
}

// OpenConsole opens the function's console page in the default browser
func (c *Client) OpenConsole(ctx context.Context, fn core.FunctionSummary) error {
	link := ConsoleURL(c.Region, fn.Name)
	if err := openURL(link); err != nil {
		return fmt.Errorf("open console: %w", err)
	}
	c.log().Info("opened console", "function", fn.Name, "url", link)
	return nil
}
