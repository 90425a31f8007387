package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var recordIDSuffixPattern = regexp.MustCompile(`(?i)([a-f0-9]{24})$`)

// remoteTimestampLayouts covers the createdat/updatedat values the API
// returns.
var remoteTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type remoteRecord struct {
	ID        string                     `json:"id"`
	URL       string                     `json:"url"`
	CreatedAt string                     `json:"createdat"`
	UpdatedAt string                     `json:"updatedat"`
	Fields    map[string]json.RawMessage `json:"fields"`
}

type remoteFieldsPayload struct {
	Fields map[string]any `json:"fields"`
}

// ExtractRecordID returns the trailing 24 hex characters of a record URL, or
// "" when the URL does not end in a record id.
func ExtractRecordID(url string) string {
	match := recordIDSuffixPattern.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) != 2 {
		return ""
	}
	return match[1]
}

func (client *Client) List(ctx context.Context, _ uint, kind models.RecordKind) ([]models.Record, error) {
	path, err := client.recordsPath(kind)
	if err != nil {
		return nil, err
	}
	raw, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	remotes, err := decodeRecordList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", services.ErrRecordStoreUnavailable, path, err)
	}

	records := make([]models.Record, 0, len(remotes))
	for _, remote := range remotes {
		records = append(records, toRecord(kind, remote))
	}
	return records, nil
}

// ListAll fetches the four apps concurrently. Any failure cancels the rest.
func (client *Client) ListAll(ctx context.Context, userID uint) (models.Collections, error) {
	kinds := models.RecordKinds()
	results := make([][]models.Record, len(kinds))

	group, groupCtx := errgroup.WithContext(ctx)
	for index, kind := range kinds {
		group.Go(func() error {
			records, err := client.List(groupCtx, userID, kind)
			if err != nil {
				return err
			}
			results[index] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return models.Collections{}, err
	}

	collections := models.Collections{}
	for _, records := range results {
		for _, record := range records {
			collections.Add(record)
		}
	}
	return collections, nil
}

func (client *Client) Get(ctx context.Context, _ uint, kind models.RecordKind, recordID string) (models.Record, error) {
	path, err := client.recordsPath(kind)
	if err != nil {
		return models.Record{}, err
	}
	raw, err := client.do(ctx, http.MethodGet, path+"/"+recordID, nil)
	if err != nil {
		return models.Record{}, err
	}

	var remote remoteRecord
	if err := json.Unmarshal(raw, &remote); err != nil {
		return models.Record{}, fmt.Errorf("%w: decode record %s: %w", services.ErrRecordStoreUnavailable, recordID, err)
	}
	if remote.ID == "" {
		remote.ID = recordID
	}
	return toRecord(kind, remote), nil
}

func (client *Client) Create(ctx context.Context, _ uint, kind models.RecordKind, fields models.Fields) (models.Record, error) {
	path, err := client.recordsPath(kind)
	if err != nil {
		return models.Record{}, err
	}
	payload, err := toRemotePayload(kind, fields, false)
	if err != nil {
		return models.Record{}, err
	}
	raw, err := client.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return models.Record{}, err
	}

	var created remoteRecord
	if err := json.Unmarshal(raw, &created); err != nil {
		return models.Record{}, fmt.Errorf("%w: decode created record: %w", services.ErrRecordStoreUnavailable, err)
	}
	recordID := created.ID
	if recordID == "" {
		recordID = ExtractRecordID(created.URL)
	}
	if recordID == "" {
		return models.Record{}, fmt.Errorf("%w: create response carries no record id", services.ErrRecordStoreUnavailable)
	}

	client.logger.Info("record created", zap.String("kind", string(kind)), zap.String("record_id", recordID))
	record := models.Record{
		ID:        recordID,
		Kind:      kind,
		Fields:    services.ApplyFieldPatch(models.Fields{}, fields),
		CreatedAt: parseRemoteTime(created.CreatedAt),
	}
	record.UpdatedAt = record.CreatedAt
	return record, nil
}

// Update sends a PATCH and re-reads the record so callers see the stored
// state. Cleared fields are sent as JSON null.
func (client *Client) Update(ctx context.Context, userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error) {
	path, err := client.recordsPath(kind)
	if err != nil {
		return models.Record{}, err
	}
	payload, err := toRemotePayload(kind, fields, true)
	if err != nil {
		return models.Record{}, err
	}
	if _, err := client.do(ctx, http.MethodPatch, path+"/"+recordID, payload); err != nil {
		return models.Record{}, err
	}
	return client.Get(ctx, userID, kind, recordID)
}

func (client *Client) Delete(ctx context.Context, _ uint, kind models.RecordKind, recordID string) error {
	path, err := client.recordsPath(kind)
	if err != nil {
		return err
	}
	if _, err := client.do(ctx, http.MethodDelete, path+"/"+recordID, nil); err != nil {
		return err
	}
	client.logger.Info("record deleted", zap.String("kind", string(kind)), zap.String("record_id", recordID))
	return nil
}

// decodeRecordList reads the id-keyed object returned by the list endpoint
// and keeps the document order.
func decodeRecordList(raw []byte) ([]remoteRecord, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return []remoteRecord{}, nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("record list is not an object")
	}

	records := make([]remoteRecord, 0)
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, errors.New("record list key is not a string")
		}

		var record remoteRecord
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		record.ID = key
		records = append(records, record)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(kind models.RecordKind, remote remoteRecord) models.Record {
	fields := make(models.Fields, len(remote.Fields))
	for remoteKey, rawValue := range remote.Fields {
		spec, ok := models.LookupRemoteField(kind, remoteKey)
		if !ok {
			continue
		}
		if value := decodeFieldValue(rawValue); value != "" {
			fields[spec.Name] = value
		}
	}

	recordID := remote.ID
	if recordID == "" {
		recordID = ExtractRecordID(remote.URL)
	}
	return models.Record{
		ID:        recordID,
		Kind:      kind,
		Fields:    fields,
		CreatedAt: parseRemoteTime(remote.CreatedAt),
		UpdatedAt: parseRemoteTime(remote.UpdatedAt),
	}
}

// decodeFieldValue flattens a remote field value to text. Lookup fields come
// back as {"key": ..., "value": ...} objects; the key is the stored value.
func decodeFieldValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		return number.String()
	}

	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		return strconv.FormatBool(flag)
	}

	var lookup struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(trimmed, &lookup); err == nil {
		return strings.TrimSpace(lookup.Key)
	}
	return ""
}

func toRemotePayload(kind models.RecordKind, fields models.Fields, partial bool) (remoteFieldsPayload, error) {
	payload := remoteFieldsPayload{Fields: make(map[string]any, len(fields))}
	for name, value := range fields {
		spec, ok := models.LookupField(kind, name)
		if !ok {
			return remoteFieldsPayload{}, fmt.Errorf("%w: unknown field %q", services.ErrInvalidRecordFields, name)
		}
		if value == "" {
			if partial {
				payload.Fields[spec.Remote] = nil
			}
			continue
		}
		payload.Fields[spec.Remote] = value
	}
	return payload, nil
}

func parseRemoteTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	for _, layout := range remoteTimestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
