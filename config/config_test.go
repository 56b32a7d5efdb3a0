package config

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	t.Parallel()

	cfg := map[string]string{
		"PORT":          "9090",
		"BAD_INT":       "nine",
		"ENABLED":       "true",
		"EMPTY":         "",
		"ADMIN_EMAILS":  " a@example.com, ,b@example.com ",
		"NOT_A_BOOLEAN": "maybe",
		"GLOW":          "0.4",
		"READ_TIMEOUT":  "15",
		"IDLE_TIMEOUT":  "2.5",
	}

	if got := GetInt(cfg, "PORT", 8080); got != 9090 {
		t.Errorf("GetInt(PORT) = %d, want 9090", got)
	}
	if got := GetInt(cfg, "BAD_INT", 7); got != 7 {
		t.Errorf("GetInt(BAD_INT) = %d, want fallback 7", got)
	}
	if got := GetString(cfg, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString(EMPTY) = %q, want fallback", got)
	}
	if got := GetString(nil, "PORT", "x"); got != "x" {
		t.Errorf("GetString(nil) = %q, want x", got)
	}
	if !GetBool(cfg, "ENABLED", false) {
		t.Error("GetBool(ENABLED) = false, want true")
	}
	if GetBool(cfg, "NOT_A_BOOLEAN", false) {
		t.Error("GetBool(NOT_A_BOOLEAN) = true, want fallback false")
	}
	if got := GetFloat(cfg, "GLOW", 0.25); got != 0.4 {
		t.Errorf("GetFloat(GLOW) = %v, want 0.4", got)
	}
	if got := GetDuration(cfg, "READ_TIMEOUT", time.Second); got != 15*time.Second {
		t.Errorf("GetDuration(READ_TIMEOUT) = %v, want 15s", got)
	}
	if got := GetDuration(cfg, "IDLE_TIMEOUT", time.Second); got != 2500*time.Millisecond {
		t.Errorf("GetDuration(IDLE_TIMEOUT) = %v, want 2.5s", got)
	}
	if got := GetDuration(cfg, "MISSING", time.Second); got != time.Second {
		t.Errorf("GetDuration(MISSING) = %v, want 1s", got)
	}

	want := []string{"a@example.com", "b@example.com"}
	if got := GetList(cfg, "ADMIN_EMAILS"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetList(ADMIN_EMAILS) = %v, want %v", got, want)
	}
	if got := GetList(cfg, "MISSING"); got != nil {
		t.Errorf("GetList(MISSING) = %v, want nil", got)
	}
}

type fakeParameterStore struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeParameterStore) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	output := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		output.NextToken = aws.String("next")
	}
	return output, nil
}

func TestMergeSSM(t *testing.T) {
	t.Parallel()

	store := &fakeParameterStore{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("from-ssm")}},
		{{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("1234")}},
	}}
	cfg := map[string]string{"PORT": "8080"}

	merged, err := MergeSSM(context.Background(), cfg, store, "/portfolio/prod")
	if err != nil {
		t.Fatalf("MergeSSM: %v", err)
	}
	if merged != 1 {
		t.Errorf("merged = %d, want 1", merged)
	}
	if cfg["JWT_SECRET"] != "from-ssm" {
		t.Errorf("JWT_SECRET = %q, want from-ssm", cfg["JWT_SECRET"])
	}
	if cfg["PORT"] != "8080" {
		t.Errorf("PORT = %q, environment value should win", cfg["PORT"])
	}
}

func TestMergeSSMError(t *testing.T) {
	t.Parallel()

	store := &fakeParameterStore{err: errors.New("access denied")}
	if _, err := MergeSSM(context.Background(), map[string]string{}, store, "/x"); err == nil {
		t.Fatal("MergeSSM succeeded, want error")
	}
}
