package analysis

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Options holds the filler vocabulary and the scoring weights.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	FillerWords []string `yaml:"filler_words" validate:"required,min=1,dive,required"`

	// Speaking rate band. Below SlowWPMThreshold costs SpeedPenaltySlow,
	// above FastWPMThreshold costs SpeedPenaltyFast; never both.
	SlowWPMThreshold int `yaml:"slow_wpm_threshold" validate:"gte=0"`
	FastWPMThreshold int `yaml:"fast_wpm_threshold" validate:"gtefield=SlowWPMThreshold"`
	SpeedPenaltySlow int `yaml:"speed_penalty_slow" validate:"gte=0"`
	SpeedPenaltyFast int `yaml:"speed_penalty_fast" validate:"gte=0"`

	FillerPenaltyConfidence int `yaml:"filler_penalty_confidence" validate:"gte=0"`
	FillerPenaltyClarity    int `yaml:"filler_penalty_clarity" validate:"gte=0"`

	MinSentenceThreshold int `yaml:"min_sentence_threshold" validate:"gte=0"`
	SentencePenalty      int `yaml:"sentence_penalty" validate:"gte=0"`
}

// DefaultOptions returns the built-in vocabulary and weights.
func DefaultOptions() Options {
	return Options{
		FillerWords:             []string{"um", "uh", "like", "okay", "you know"},
		SlowWPMThreshold:        100,
		FastWPMThreshold:        180,
		SpeedPenaltySlow:        15,
		SpeedPenaltyFast:        10,
		FillerPenaltyConfidence: 5,
		FillerPenaltyClarity:    3,
		MinSentenceThreshold:    3,
		SentencePenalty:         20,
	}
}

// Validate checks that the options describe a usable scoring setup.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid scoring options: %w", err)
	}
	return nil
}

// LoadOptions reads a YAML file on top of DefaultOptions. Keys missing from
// the file keep their default value; filler_words replaces the whole list.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("open scoring options %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return opts, fmt.Errorf("decode scoring options %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
