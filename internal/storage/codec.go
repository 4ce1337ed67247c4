package storage

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/task"
)

// CodecName identifies how the task collection is encoded in its slot.
type CodecName string

const (
	CodecJSON    CodecName = "json"
	CodecYAML    CodecName = "yaml"
	CodecMsgpack CodecName = "msgpack"
)

// Codec converts the whole task collection to and from slot text.
type Codec interface {
	Encode(tasks []*task.Task) (string, error)
	Decode(data string) ([]*task.Task, error)
}

// NewCodec returns the codec registered under name. Empty means JSON.
func NewCodec(name string) (Codec, error) {
	switch CodecName(strings.ToLower(name)) {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecYAML:
		return yamlCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	default:
		return nil, todoerrors.InvalidCodecError{Value: name}
	}
}

// taskRecord is the serializable form of a task. Field names match the
// browser slot format so existing JSON exports load unchanged.
type taskRecord struct {
	ID            string  `json:"id"                      yaml:"id"                      msgpack:"id"`
	Title         string  `json:"title"                   yaml:"title"                   msgpack:"title"`
	Description   string  `json:"description"             yaml:"description"             msgpack:"description"`
	Category      string  `json:"category"                yaml:"category"                msgpack:"category"`
	Priority      string  `json:"priority"                yaml:"priority"                msgpack:"priority"`
	Deadline      string  `json:"deadline,omitempty"      yaml:"deadline,omitempty"      msgpack:"deadline,omitempty"`
	EstimatedTime string  `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty" msgpack:"estimatedTime,omitempty"`
	Completed     bool    `json:"completed"               yaml:"completed"               msgpack:"completed"`
	CreatedAt     string  `json:"createdAt"               yaml:"createdAt"               msgpack:"createdAt"`
	CompletedAt   *string `json:"completedAt,omitempty"   yaml:"completedAt,omitempty"   msgpack:"completedAt,omitempty"`
}

func toRecord(t *task.Task) taskRecord {
	r := taskRecord{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Category:      string(t.Category),
		Priority:      string(t.Priority),
		EstimatedTime: t.EstimatedTime,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339Nano),
	}
	if t.Deadline != nil {
		r.Deadline = t.Deadline.String()
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339Nano)
		r.CompletedAt = &s
	}
	return r
}

func fromRecord(r taskRecord) (*task.Task, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid createdAt: " + err.Error()}
	}

	t := &task.Task{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      task.Category(r.Category),
		Priority:      task.Priority(r.Priority),
		EstimatedTime: r.EstimatedTime,
		Completed:     r.Completed,
		CreatedAt:     createdAt,
	}

	// Browser exports store an empty string for "no deadline".
	if r.Deadline != "" {
		d, err := task.ParseDate(r.Deadline)
		if err != nil {
			return nil, &parseError{"invalid deadline: " + err.Error()}
		}
		t.Deadline = &d
	}

	if r.CompletedAt != nil && *r.CompletedAt != "" {
		ts, err := parseTime(*r.CompletedAt)
		if err != nil {
			return nil, &parseError{"invalid completedAt: " + err.Error()}
		}
		t.CompletedAt = &ts
	}
	return t, nil
}

func toRecords(tasks []*task.Task) []taskRecord {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}
	return records
}

func fromRecords(records []taskRecord) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(records))
	for _, r := range records {
		t, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

type jsonCodec struct{}

func (jsonCodec) Encode(tasks []*task.Task) (string, error) {
	data, err := json.Marshal(toRecords(tasks))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (jsonCodec) Decode(data string) ([]*task.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, &parseError{"invalid JSON: " + err.Error()}
	}
	return fromRecords(records)
}

type yamlCodec struct{}

func (yamlCodec) Encode(tasks []*task.Task) (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(toRecords(tasks)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (yamlCodec) Decode(data string) ([]*task.Task, error) {
	var records []taskRecord
	if err := yaml.Unmarshal([]byte(data), &records); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}
	return fromRecords(records)
}

// msgpackCodec stores base64 text because slots hold strings, not bytes.
type msgpackCodec struct{}

func (msgpackCodec) Encode(tasks []*task.Task) (string, error) {
	packed, err := msgpack.Marshal(toRecords(tasks))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(packed), nil
}

func (msgpackCodec) Decode(data string) ([]*task.Task, error) {
	packed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, &parseError{"invalid base64: " + err.Error()}
	}
	var records []taskRecord
	if err = msgpack.Unmarshal(packed, &records); err != nil {
		return nil, &parseError{"invalid msgpack: " + err.Error()}
	}
	return fromRecords(records)
}

// parseError represents a malformed slot.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// parseTime tries to parse a time string in common formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &parseError{"unrecognized time format"}
}
