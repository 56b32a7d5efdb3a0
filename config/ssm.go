package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterStore is the subset of the SSM client used to read parameters.
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// MergeSSM overlays every parameter under parameterPath onto config. The
// parameter's base name becomes the key, so /portfolio/prod/JWT_SECRET is
// read as JWT_SECRET. Values already present in the environment win.
func MergeSSM(ctx context.Context, config map[string]string, store ParameterStore, parameterPath string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(store, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	merged := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return merged, fmt.Errorf("reading SSM parameters under %s: %w", parameterPath, err)
		}

		for _, parameter := range page.Parameters {
			key := path.Base(aws.ToString(parameter.Name))
			if existing, ok := config[key]; ok && existing != "" {
				continue
			}
			config[key] = aws.ToString(parameter.Value)
			merged++
		}
	}

	return merged, nil
}

// LoadSSM builds an SSM client from the default AWS credential chain and
// merges SSM_PARAMETER_PATH into config. It is a no-op when the path is unset.
func LoadSSM(ctx context.Context, config map[string]string) error {
	parameterPath := GetString(config, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(config, "AWS_REGION", "us-east-1")))
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	merged, err := MergeSSM(ctx, config, ssm.NewFromConfig(awsCfg), parameterPath)
	if err != nil {
		return err
	}

	log.Info().Int("parameters", merged).Str("path", parameterPath).Msg("Merged SSM parameters into config")
	return nil
}
