package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// AnalyzeInput is one expert panel's estimates for a risk event
type AnalyzeInput struct {
	RiskID              types.RiskID `json:"riskId" validate:"required"`
	ExpertProbabilities []float64    `json:"expertProbabilities" validate:"required,len=10,dive,gte=0,lte=1"`
	ExpertLosses        []float64    `json:"expertLosses" validate:"required,len=10,dive,gte=0,lte=1"`
	ExpertWeights       []float64    `json:"expertWeights,omitempty" validate:"omitempty,len=10,dive,gte=0"`
}

// MonitorInput is the post-mitigation re-estimation of an analyzed risk
type MonitorInput struct {
	RiskID                 types.RiskID `json:"riskId" validate:"required"`
	NewExpertProbabilities []float64    `json:"newExpertProbabilities" validate:"required,len=10,dive,gte=0,lte=1"`
	NewExpertLosses        []float64    `json:"newExpertLosses" validate:"required,len=10,dive,gte=0,lte=1"`
	ExpertWeights          []float64    `json:"expertWeights,omitempty" validate:"omitempty,len=10,dive,gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validation tags ordered by how early the failure is reported
var tagSeverity = map[string]int{
	"required": 0,
	"len":      1,
	"gte":      2,
	"lte":      2,
}

// validateInput maps validator failures to domain sentinel errors. When several
// fields fail, the most fundamental failure wins: missing before cardinality
// before range.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerr.Wrap(model.ErrInvalidParameter, err.Error())
	}

	worst := verrs[0]
	for _, fe := range verrs[1:] {
		if severity(fe.Tag()) < severity(worst.Tag()) {
			worst = fe
		}
	}

	switch worst.Tag() {
	case "required":
		return goerr.Wrap(model.ErrMissingParameter, worst.Field()+" is required",
			goerr.V(model.FieldKey, worst.Field()))
	case "len":
		return goerr.Wrap(model.ErrInvalidCardinality, worst.Field()+" must contain exactly 10 expert estimates",
			goerr.V(model.FieldKey, worst.Field()), goerr.V("count", reflect.ValueOf(worst.Value()).Len()))
	case "gte", "lte":
		return goerr.Wrap(model.ErrInvalidEstimate, worst.Field()+" is out of range",
			goerr.V(model.FieldKey, worst.Field()), goerr.V("value", worst.Value()))
	default:
		return goerr.Wrap(model.ErrInvalidParameter, worst.Error(), goerr.V(model.FieldKey, worst.Field()))
	}
}

func severity(tag string) int {
	if s, ok := tagSeverity[tag]; ok {
		return s
	}
	return len(tagSeverity)
}
