package publisher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-json-experiment/json"

	"github.com/jgoulah/seoulenergy/internal/config"
	"github.com/jgoulah/seoulenergy/internal/log"
	"github.com/jgoulah/seoulenergy/pkg/models"
)

// Publisher pushes report aggregates to Home Assistant and/or MQTT
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
	httpClient  *http.Client
	logger      *log.Logger
}

// New creates a publisher for whichever targets are enabled
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig, logger *log.Logger) (*Publisher, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if !mqttCfg.Enabled && !haCfg.Enabled {
		return nil, fmt.Errorf("no publish targets enabled (configure home_assistant or mqtt)")
	}

	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityPrefix == "" {
			return nil, fmt.Errorf("Home Assistant entity_prefix is required when enabled")
		}
	}

	var client mqtt.Client
	var topicPrefix string

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		topicPrefix = mqttCfg.TopicPrefix
		if topicPrefix == "" {
			topicPrefix = "seoul_energy"
		}

		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("seoulenergy")
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(false)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger.WithComponent(log.ComponentPublisher),
	}, nil
}

// YearlyPayload is published for each year of a report
type YearlyPayload struct {
	ReportID string  `json:"report_id"`
	Year     int     `json:"year"`
	EUS      float64 `json:"eus"`
	GUS      float64 `json:"gus"`
	WUS      float64 `json:"wus"`
	HUS      float64 `json:"hus"`
	Total    float64 `json:"total"`
}

// SeasonalPayload is published for each season of a report
type SeasonalPayload struct {
	ReportID string  `json:"report_id"`
	Season   string  `json:"season"`
	Label    string  `json:"label"`
	AvgGUS   float64 `json:"avg_gus"`
	Rows     int     `json:"rows"`
}

// HAState is the body of a Home Assistant state update
type HAState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// PublishReport sends every yearly total and seasonal average of a report.
// It returns the number of messages delivered and the first error seen.
func (p *Publisher) PublishReport(report *models.Report) (int, error) {
	sent := 0
	var firstErr error
	record := func(err error) {
		if err == nil {
			sent++
			return
		}
		p.logger.Warn("publish failed", log.FieldReportID, report.ID, log.FieldError, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, y := range report.Yearly {
		payload := YearlyPayload{
			ReportID: report.ID,
			Year:     y.Year,
			EUS:      y.EUS,
			GUS:      y.GUS,
			WUS:      y.WUS,
			HUS:      y.HUS,
			Total:    y.Total,
		}
		if p.haConfig.Enabled {
			record(p.publishHA(fmt.Sprintf("total_%d", y.Year), y.Total, map[string]any{
				"friendly_name": fmt.Sprintf("Seoul energy usage %d", y.Year),
				"year":          y.Year,
				"electricity":   y.EUS,
				"gas":           y.GUS,
				"water":         y.WUS,
				"heat":          y.HUS,
				"report_id":     report.ID,
			}))
		}
		if p.client != nil {
			record(p.publishMQTT(fmt.Sprintf("yearly/%d", y.Year), payload))
		}
	}

	for _, s := range report.Seasonal {
		name := strings.ToLower(s.Season.English())
		payload := SeasonalPayload{
			ReportID: report.ID,
			Season:   name,
			Label:    string(s.Season),
			AvgGUS:   s.AvgGUS,
			Rows:     s.Count,
		}
		if p.haConfig.Enabled {
			record(p.publishHA("gas_"+name, s.AvgGUS, map[string]any{
				"friendly_name": fmt.Sprintf("Seoul average gas usage (%s)", s.Season.English()),
				"season":        string(s.Season),
				"rows":          s.Count,
				"report_id":     report.ID,
			}))
		}
		if p.client != nil {
			record(p.publishMQTT("seasonal/"+name, payload))
		}
	}

	return sent, firstErr
}

// publishHA sets the state of {entity_prefix}_{suffix} via the HA REST API
func (p *Publisher) publishHA(suffix string, value float64, attrs map[string]any) error {
	entityID := p.haConfig.EntityPrefix + "_" + suffix
	apiURL := fmt.Sprintf("%s/api/states/%s", strings.TrimRight(p.haConfig.URL, "/"), entityID)

	body, err := json.Marshal(HAState{
		State:      strconv.FormatFloat(value, 'f', 2, 64),
		Attributes: attrs,
	}, json.Deterministic(true))
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	// 201 on first write of an entity, 200 afterwards
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error for %s: status %d, response: %s", entityID, resp.StatusCode, string(respBody))
	}

	return nil
}

// publishMQTT sends a retained JSON message under the topic prefix
func (p *Publisher) publishMQTT(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	fullTopic := p.topicPrefix + "/" + topic
	token := p.client.Publish(fullTopic, 1, true, body)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("publishing to %s: timed out", fullTopic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", fullTopic, err)
	}
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
