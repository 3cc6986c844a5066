package dexcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	appID            = "d89443d2-327c-4a6f-89e5-496bbb0317db"
	baseUrl          = "https://shareous1.dexcom.com/ShareWebServices/Services"
	loginEndpoint    = "General/LoginPublisherAccountByName"
	readingsEndpoint = "Publisher/ReadPublisherLatestGlucoseValues"

	// One day's worth.
	MinuteLimit = 1440
	CountLimit  = 288

	DeviceName = "Dexcom-Share"
	source     = "Dexcom"
)

// Readings ids are derived from the reading time so imports are idempotent.
var namespace = uuid.MustParse("6f1c5a3e-2b8f-4a0e-9f59-2d0a5c7e1b44")

type Client struct {
	client      *http.Client
	logger      *zap.Logger
	accountName string
	password    string
	sessionID   string
	timezone    string
}

type Source interface {
	Readings(ctx context.Context, minutes, maxCount int) ([]defs.Cbg, error)
}

type LoginRequest struct {
	AccountName   string `json:"accountName"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

type Reading struct {
	WT          string  `json:"WT"`
	SystemTime  string  `json:"ST"`
	DisplayTime string  `json:"DT"`
	Value       float64 `json:"Value"`
	Trend       string  `json:"Trend"`
}

func New(accountName, password, timezone string, logger *zap.Logger) *Client {
	return &Client{
		client:      &http.Client{},
		logger:      logger,
		accountName: accountName,
		password:    password,
		timezone:    timezone,
	}
}

// Readings fetches readings from Dexcom's Share API as cbg records.
// Automatically creates a new session when it expires.
func (c *Client) Readings(ctx context.Context, minutes, maxCount int) ([]defs.Cbg, error) {
	cbgs, err := c.readings(ctx, minutes, maxCount)
	if err == nil {
		return cbgs, nil
	}
	if _, err = c.CreateSession(ctx); err != nil {
		return nil, err
	}
	return c.readings(ctx, minutes, maxCount)
}

func (c *Client) CreateSession(ctx context.Context) (string, error) {
	lreq := &LoginRequest{
		AccountName:   c.accountName,
		Password:      c.password,
		ApplicationID: appID,
	}

	b, err := json.Marshal(lreq)
	if err != nil {
		return "", fmt.Errorf("unable to marshal login request: %w", err)
	}

	c.logger.Debug("making login request for sessionID",
		zap.String("account", c.accountName),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseUrl+"/"+loginEndpoint, bytes.NewBuffer(b))
	if err != nil {
		return "", fmt.Errorf("unable to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to login: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read login response: %w", err)
	}
	c.sessionID = strings.Trim(string(body), "\"")

	c.logger.Debug("successfully obtained sessionID")

	return c.sessionID, nil
}

func (c *Client) readings(ctx context.Context, minutes, maxCount int) ([]defs.Cbg, error) {
	if minutes > MinuteLimit || maxCount > CountLimit {
		return nil, fmt.Errorf("window too large: minutes %d, maxCount %d", minutes, maxCount)
	}
	if c.sessionID == "" {
		return nil, fmt.Errorf("no session")
	}

	params := url.Values{
		"sessionId": {c.sessionID},
		"minutes":   {strconv.Itoa(minutes)},
		"maxCount":  {strconv.Itoa(maxCount)},
	}

	c.logger.Debug("making fetch request",
		zap.Int("minutes", minutes),
		zap.Int("maximum count", maxCount),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseUrl+"/"+readingsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create readings request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch readings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch readings: status %d", resp.StatusCode)
	}

	var readings []*Reading
	if err = json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		c.logger.Debug("failed to decode readings response", zap.Error(err))
		return nil, fmt.Errorf("unable to decode readings: %w", err)
	}

	c.logger.Debug("received readings from share API",
		zap.Int("count", len(readings)),
	)

	cbgs := make([]defs.Cbg, len(readings))
	for i, r := range readings {
		cbg, err := transform(r, c.timezone)
		if err != nil {
			return nil, err
		}
		cbgs[i] = cbg
	}

	return cbgs, nil
}

// transform reads the epoch out of the "Date(1651987807000)" wall time.
func transform(r *Reading, tz string) (defs.Cbg, error) {
	if len(r.WT) < 5 {
		return defs.Cbg{}, fmt.Errorf("unexpected reading time: %q", r.WT)
	}
	epoch, err := strconv.ParseInt(strings.Trim(r.WT[4:], "()"), 10, 64)
	if err != nil {
		return defs.Cbg{}, fmt.Errorf("unable to parse reading time: %w", err)
	}
	if tz == "" {
		tz = time.UTC.String()
	}

	return defs.Cbg{
		BaseDatum: defs.BaseDatum{
			ID:     uuid.NewSHA1(namespace, []byte(strconv.FormatInt(epoch, 10))).String(),
			Type:   defs.CbgType,
			Source: source,
			BaseTime: defs.BaseTime{
				Timezone:      tz,
				NormalTime:    timeutil.EpochToISO(epoch),
				Epoch:         epoch,
				DisplayOffset: displayOffset(epoch, tz),
			},
		},
		Bg: defs.Bg{
			Units:     defs.MgdL,
			Value:     r.Value,
			LocalDate: timeutil.LocalDate(epoch, tz),
			MsPer24:   timeutil.MsPer24(epoch, tz),
		},
		DeviceName: DeviceName,
	}, nil
}

func displayOffset(epoch int64, tz string) int {
	_, offset := timeutil.EpochToTime(epoch, tz).Zone()
	return offset / 60
}
