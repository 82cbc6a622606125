package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/handlers"
	"voicecoach/api-gateway/internal/apperrors"
	"voicecoach/api-gateway/internal/coach"
	"voicecoach/api-gateway/internal/mocks"
	"voicecoach/api-gateway/internal/speech"
	"voicecoach/api-gateway/internal/worker"
	"voicecoach/api-gateway/middleware"
	"voicecoach/api-gateway/models"
)

const sampleTranscript = "Um, I led the team. We shipped on time. It worked."

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type rejectingSubmitter struct{ err error }

func (s rejectingSubmitter) Submit(worker.Job) error { return s.err }

type testDeps struct {
	transcriber *mocks.MockTranscriber
	feedback    *mocks.MockFeedbackGenerator
}

func newTestApp(t *testing.T, jobs handlers.JobSubmitter, timeout time.Duration) (*fiber.App, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := quietLogger()

	deps := testDeps{
		transcriber: mocks.NewMockTranscriber(ctrl),
		feedback:    mocks.NewMockFeedbackGenerator(ctrl),
	}
	c := coach.New(deps.transcriber, deps.feedback, nil, logger)

	if jobs == nil {
		dispatcher := worker.NewDispatcher(2, 4, logger)
		dispatcher.Run()
		t.Cleanup(dispatcher.Stop)
		jobs = dispatcher
	}

	h := handlers.NewApplicationHandler(c, jobs, logger, timeout)
	return handlers.NewApp(h, handlers.AppConfig{BodyLimit: 1 << 20}), deps
}

func analyzeRequest(t *testing.T, path string, audio []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if audio != nil {
		part, err := writer.CreateFormFile("audio", "answer.wav")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(audio); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestAnalyzeSuccess(t *testing.T) {
	for _, path := range []string{"/analyze", "/api/v1/analyze"} {
		t.Run(path, func(t *testing.T) {
			app, deps := newTestApp(t, nil, time.Second)

			deps.transcriber.EXPECT().
				Transcribe(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, a speech.Audio) (string, error) {
					if string(a.Data) != "RIFF" || a.Filename != "answer.wav" {
						t.Errorf("unexpected audio %q %q", a.Data, a.Filename)
					}
					return sampleTranscript, nil
				})
			deps.feedback.EXPECT().Generate(gomock.Any(), sampleTranscript).Return("Good structure.", nil)

			resp, err := app.Test(analyzeRequest(t, path, []byte("RIFF"), map[string]string{"duration": "6"}), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if resp.Header.Get(middleware.RequestIDHeader) == "" {
				t.Fatal("missing request id header")
			}

			body := decode[models.AnalysisResponse](t, resp)
			if body.RawTranscript != sampleTranscript || body.AIFeedback != "Good structure." {
				t.Fatalf("unexpected body %#v", body)
			}
			m := body.Metrics
			if m.WPM != 110 || m.TotalWords != 11 || m.Confidence != 95 || m.Clarity != 97 {
				t.Fatalf("unexpected metrics %#v", m)
			}
			if m.FillerTotal != 1 || m.FillerBreakdown["um"] != 1 || m.FillerBreakdown["like"] != 0 {
				t.Fatalf("unexpected filler metrics %#v", m)
			}
		})
	}
}

func TestAnalyzeWithoutDurationUsesDefault(t *testing.T) {
	app, deps := newTestApp(t, nil, time.Second)

	deps.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return("one two three", nil)
	deps.feedback.EXPECT().Generate(gomock.Any(), "one two three").Return("ok", nil)

	resp, err := app.Test(analyzeRequest(t, "/analyze", []byte("RIFF"), nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body := decode[models.AnalysisResponse](t, resp)
	if body.Metrics.WPM != 3 {
		t.Fatalf("wpm = %d, want 3 over the default minute", body.Metrics.WPM)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		audio  []byte
		fields map[string]string
	}{
		{name: "missing audio", fields: map[string]string{"duration": "10"}},
		{name: "empty audio", audio: []byte{}},
		{name: "negative duration", audio: []byte("RIFF"), fields: map[string]string{"duration": "-1"}},
		{name: "non numeric duration", audio: []byte("RIFF"), fields: map[string]string{"duration": "ten"}},
		{name: "nan duration", audio: []byte("RIFF"), fields: map[string]string{"duration": "NaN"}},
		{name: "infinite duration", audio: []byte("RIFF"), fields: map[string]string{"duration": "+Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, nil, time.Second)

			resp, err := app.Test(analyzeRequest(t, "/analyze", tt.audio, tt.fields), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			body := decode[models.ErrorResponse](t, resp)
			if body.Status != "error" || body.Message == "" {
				t.Fatalf("unexpected body %#v", body)
			}
		})
	}
}

func TestAnalyzeMapsUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"quota", apperrors.New(apperrors.KindQuotaExceeded, "speech", "quota exhausted"), fiber.StatusTooManyRequests, "quota_exceeded"},
		{"malformed", apperrors.New(apperrors.KindMalformedAudio, "speech", "bad file"), fiber.StatusUnprocessableEntity, "malformed_audio"},
		{"unavailable", apperrors.New(apperrors.KindUnavailable, "speech", "down"), fiber.StatusServiceUnavailable, "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApp(t, nil, time.Second)
			deps.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return("", tt.err)

			resp, err := app.Test(analyzeRequest(t, "/analyze", []byte("RIFF"), nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decode[models.ErrorResponse](t, resp)
			if body.Kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q", body.Kind, tt.wantKind)
			}
		})
	}
}

func TestAnalyzeFeedbackFailure(t *testing.T) {
	app, deps := newTestApp(t, nil, time.Second)
	deps.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return(sampleTranscript, nil)
	deps.feedback.EXPECT().Generate(gomock.Any(), sampleTranscript).
		Return("", apperrors.New(apperrors.KindQuotaExceeded, "feedback", "rate limited"))

	resp, err := app.Test(analyzeRequest(t, "/analyze", []byte("RIFF"), map[string]string{"duration": "6"}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	app, deps := newTestApp(t, nil, 50*time.Millisecond)
	deps.transcriber.EXPECT().
		Transcribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ speech.Audio) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	resp, err := app.Test(analyzeRequest(t, "/analyze", []byte("RIFF"), nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
}

func TestAnalyzeQueueRejections(t *testing.T) {
	for _, qerr := range []error{worker.ErrQueueFull, worker.ErrStopped} {
		t.Run(qerr.Error(), func(t *testing.T) {
			app, _ := newTestApp(t, rejectingSubmitter{err: qerr}, time.Second)

			resp, err := app.Test(analyzeRequest(t, "/analyze", []byte("RIFF"), nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusServiceUnavailable {
				t.Fatalf("status = %d, want 503", resp.StatusCode)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t, nil, time.Second)

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		if body := decode[models.HealthResponse](t, resp); body.Status != "OK" {
			t.Fatalf("%s body = %#v", path, body)
		}
	}
}

func TestUnknownRouteUsesJSONErrors(t *testing.T) {
	app, _ := newTestApp(t, nil, time.Second)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decode[models.ErrorResponse](t, resp); body.Status != "error" {
		t.Fatalf("unexpected body %#v", body)
	}
}
