package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client provides access to the AWS APIs the scanner depends on.
type Client interface {
	// GetCallerIdentity returns the ARN of the base credentials.
	GetCallerIdentity(ctx context.Context) (string, error)

	// DescribeRegions returns every region of the partition, including
	// opt-in regions that have not been enabled.
	DescribeRegions(ctx context.Context) ([]Region, error)

	// ListAccounts pages through the organization's account directory.
	ListAccounts(ctx context.Context) ([]Account, error)

	// AssumeRole exchanges the base identity for account-scoped credentials.
	// An empty region requests issuance from the location-agnostic STS
	// endpoint; a non-empty region pins issuance to that region's endpoint.
	AssumeRole(ctx context.Context, roleARN, sessionName string, duration time.Duration, region string) (*Credentials, error)

	// GetAccountAlias returns the account alias visible under the given
	// credentials, if one is set.
	GetAccountAlias(ctx context.Context, creds Credentials) (*string, error)

	// ListDBResources returns the complete RDS inventory of one region
	// under the given credentials, instances and clusters alike.
	ListDBResources(ctx context.Context, creds Credentials, region string) ([]DBResource, error)
}

// AWSClient implements the Client interface using AWS SDK v2.
type AWSClient struct {
	cfg aws.Config
}

// NewClient creates a new AWS client from the default credential chain,
// optionally pinned to a shared-config profile.
func NewClient(ctx context.Context, profile, region string) (*AWSClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &AWSClient{cfg: cfg}, nil
}

// GetCallerIdentity returns the ARN of the base credentials.
func (c *AWSClient) GetCallerIdentity(ctx context.Context) (string, error) {
	stsClient := sts.NewFromConfig(c.cfg)
	output, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting caller identity: %w", err)
	}
	return aws.ToString(output.Arn), nil
}

// DescribeRegions returns all regions, including opt-in ones.
func (c *AWSClient) DescribeRegions(ctx context.Context) ([]Region, error) {
	ec2Client := ec2.NewFromConfig(c.cfg)
	output, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("describing regions: %w", err)
	}

	regions := make([]Region, 0, len(output.Regions))
	for _, r := range output.Regions {
		regions = append(regions, Region{
			Name:        aws.ToString(r.RegionName),
			OptInStatus: aws.ToString(r.OptInStatus),
		})
	}
	return regions, nil
}

// ListAccounts pages through the organization's account directory.
func (c *AWSClient) ListAccounts(ctx context.Context) ([]Account, error) {
	orgClient := organizations.NewFromConfig(c.cfg)
	paginator := organizations.NewListAccountsPaginator(orgClient, &organizations.ListAccountsInput{})

	var accounts []Account
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing organization accounts: %w", err)
		}
		for _, a := range output.Accounts {
			accounts = append(accounts, Account{
				ID:   aws.ToString(a.Id),
				Name: aws.ToString(a.Name),
			})
		}
	}
	return accounts, nil
}

// AssumeRole performs a single STS AssumeRole call. The error is returned
// with its API error chain intact so callers can classify it.
func (c *AWSClient) AssumeRole(ctx context.Context, roleARN, sessionName string, duration time.Duration, region string) (*Credentials, error) {
	cfg := c.cfg
	if region != "" {
		cfg = c.cfg.Copy()
		cfg.Region = region
	}

	stsClient := sts.NewFromConfig(cfg)
	output, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(int32(duration.Seconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("assuming role %s: %w", roleARN, err)
	}

	creds := output.Credentials
	return &Credentials{
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		Expiration:      aws.ToTime(creds.Expiration),
	}, nil
}

// GetAccountAlias returns the account alias if one is set.
func (c *AWSClient) GetAccountAlias(ctx context.Context, creds Credentials) (*string, error) {
	iamClient := iam.NewFromConfig(c.scoped(creds, c.cfg.Region))
	output, err := iamClient.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return nil, fmt.Errorf("listing account aliases: %w", err)
	}
	if len(output.AccountAliases) > 0 {
		return &output.AccountAliases[0], nil
	}
	return nil, nil
}

// ListDBResources lists RDS instances and clusters in the specified region.
// Both listings page until exhaustion before returning.
func (c *AWSClient) ListDBResources(ctx context.Context, creds Credentials, region string) ([]DBResource, error) {
	rdsClient := rds.NewFromConfig(c.scoped(creds, region))

	var resources []DBResource
	instances := rds.NewDescribeDBInstancesPaginator(rdsClient, &rds.DescribeDBInstancesInput{})
	for instances.HasMorePages() {
		output, err := instances.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing DB instances: %w", err)
		}
		for _, db := range output.DBInstances {
			resources = append(resources, DBResource{
				Identifier:    aws.ToString(db.DBInstanceIdentifier),
				Engine:        aws.ToString(db.Engine),
				EngineVersion: aws.ToString(db.EngineVersion),
				InstanceClass: aws.ToString(db.DBInstanceClass),
				Status:        aws.ToString(db.DBInstanceStatus),
			})
		}
	}

	clusters := rds.NewDescribeDBClustersPaginator(rdsClient, &rds.DescribeDBClustersInput{})
	for clusters.HasMorePages() {
		output, err := clusters.NextPage(ctx)
		if err != nil {
			// Some regions do not support clusters
			if strings.Contains(err.Error(), "not supported") {
				return resources, nil
			}
			return nil, fmt.Errorf("describing DB clusters: %w", err)
		}
		for _, db := range output.DBClusters {
			resources = append(resources, DBResource{
				Identifier:    aws.ToString(db.DBClusterIdentifier),
				Engine:        aws.ToString(db.Engine),
				EngineVersion: aws.ToString(db.EngineVersion),
				Status:        aws.ToString(db.Status),
				Cluster:       true,
			})
		}
	}

	return resources, nil
}

// scoped returns a copy of the base config bound to the given credentials
// and region.
func (c *AWSClient) scoped(creds Credentials, region string) aws.Config {
	cfg := c.cfg.Copy()
	cfg.Region = region
	cfg.Credentials = credentials.NewStaticCredentialsProvider(
		creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
	return cfg
}
