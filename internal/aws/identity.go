package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity describes the caller the session runs as
type Identity struct {
	Account string
	ARN     string
	Region  string
}

// CallerIdentity resolves the account and principal behind the credentials
func (c *Client) CallerIdentity(ctx context.Context) (Identity, error) {
	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{Region: c.Region}, wrapError("get caller identity", err)
	}
	return Identity{
		Account: getString(out.Account),
		ARN:     getString(out.Arn),
		Region:  c.Region,
	}, nil
}
