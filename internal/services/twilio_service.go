package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"
)

// TwilioService wraps the Twilio REST API for voice calls and WhatsApp
// messages. Implements VoiceDialer and WhatsAppSender.
type TwilioService struct {
	client       *twilio.RestClient
	fromNumber   string
	whatsappFrom string
	webhookBase  string
}

func NewTwilioService(cfg *config.Config) *TwilioService {
	s := &TwilioService{
		fromNumber:   cfg.TwilioPhoneNumber,
		whatsappFrom: cfg.TwilioWhatsAppFrom,
		webhookBase:  cfg.TwilioWebhookBase,
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	} else {
		log.Println("⚠️  Twilio credentials not configured. Call/WhatsApp features disabled.")
	}
	return s
}

func (s *TwilioService) IsConfigured() bool {
	return s.client != nil && s.fromNumber != ""
}

// Dial places an outbound call. Twilio fetches TwiML from our voice webhook
// and reports state changes to the status webhook.
func (s *TwilioService) Dial(toNumber, callLogID string) (string, error) {
	if !s.IsConfigured() {
		return "", ErrProviderNotConfigured
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.fromNumber)
	params.SetUrl(fmt.Sprintf("%s/api/webhooks/twilio/voice?call_log_id=%s", s.webhookBase, callLogID))
	params.SetStatusCallback(fmt.Sprintf("%s/api/webhooks/twilio/status?call_log_id=%s", s.webhookBase, callLogID))
	params.SetStatusCallbackEvent([]string{"initiated", "ringing", "answered", "completed"})

	call, err := s.client.Api.CreateCall(params)
	if err != nil {
		return "", err
	}
	if call.Sid == nil {
		return "", errors.New("twilio returned no call sid")
	}
	return *call.Sid, nil
}

// Send delivers a single WhatsApp message and returns the message SID.
func (s *TwilioService) Send(toNumber, body string) (string, error) {
	if !s.IsConfigured() {
		return "", ErrProviderNotConfigured
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + s.whatsappFrom)
	params.SetTo("whatsapp:" + toNumber)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if msg.Sid == nil {
		return "", errors.New("twilio returned no message sid")
	}
	return *msg.Sid, nil
}

func (s *TwilioService) FetchStatus(messageSID string) (*MessageStatus, error) {
	if !s.IsConfigured() {
		return nil, ErrProviderNotConfigured
	}

	msg, err := s.client.Api.FetchMessage(messageSID, &twilioApi.FetchMessageParams{})
	if err != nil {
		return nil, err
	}
	status := &MessageStatus{}
	if msg.Status != nil {
		status.Status = *msg.Status
	}
	if msg.ErrorCode != nil {
		status.ErrorCode = fmt.Sprintf("%d", *msg.ErrorCode)
	}
	if msg.ErrorMessage != nil {
		status.ErrorMessage = *msg.ErrorMessage
	}
	return status, nil
}

// VoiceScriptTwiML speaks the campaign script, records the student's
// response with transcription, then hangs up.
func (s *TwilioService) VoiceScriptTwiML(script, callLogID string) (string, error) {
	verbs := []twiml.Element{
		&twiml.VoiceSay{Message: script, Voice: "alice", Language: "en-IN"},
		&twiml.VoiceRecord{
			Action:             fmt.Sprintf("%s/api/webhooks/twilio/recording?call_log_id=%s", s.webhookBase, callLogID),
			Transcribe:         "true",
			TranscribeCallback: fmt.Sprintf("%s/api/webhooks/twilio/transcription?call_log_id=%s", s.webhookBase, callLogID),
			MaxLength:          "60",
			PlayBeep:           "true",
			Timeout:            "5",
		},
		&twiml.VoiceSay{Message: "Thank you for your response. Goodbye.", Voice: "alice", Language: "en-IN"},
		&twiml.VoiceHangup{},
	}
	return twiml.Voice(verbs)
}

// RecordingCompleteTwiML ends the call after the record action fires.
func (s *TwilioService) RecordingCompleteTwiML() (string, error) {
	verbs := []twiml.Element{
		&twiml.VoiceSay{Message: "Thank you. Your response has been recorded.", Voice: "alice", Language: "en-IN"},
		&twiml.VoiceHangup{},
	}
	return twiml.Voice(verbs)
}
