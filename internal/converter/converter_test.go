package converter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

type fakePublisher struct {
	data       []byte
	attributes map[string]string
	err        error
}

func (p *fakePublisher) Publish(_ context.Context, data []byte, attributes map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.data = data
	p.attributes = attributes
	return "pub-1", nil
}

type fakeStore struct {
	inputs    map[string][]byte
	outputs   map[string][]byte
	inputErr  error
	outputErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{inputs: map[string][]byte{}, outputs: map[string][]byte{}}
}

func (s *fakeStore) SaveInput(_ context.Context, id string, data []byte) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	s.inputs[id] = data
	return "in/" + id, nil
}

func (s *fakeStore) SaveOutput(_ context.Context, id string, data []byte) (string, error) {
	if s.outputErr != nil {
		return "", s.outputErr
	}
	s.outputs[id] = data
	return "out/" + id, nil
}

func saleEvent(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../orae/testdata/sale_event.json")
	require.NoError(t, err)
	return data
}

var fixedNow = time.Date(2025, 3, 14, 17, 6, 0, 0, time.FixedZone("EDT", -4*60*60))

func TestConvert_Sale(t *testing.T) {
	result := New().Convert(saleEvent(t))

	require.NoError(t, result.Error)
	assert.Equal(t, Converted, result.Disposition)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 2, result.Stats.OrderRecords)
	assert.Equal(t, 1, result.Stats.TenderRecords)

	// Source line ids are not encoded.
	var decoded rims.RecordSet
	require.NoError(t, json.Unmarshal(result.Output, &decoded))
	require.Len(t, decoded.OrderRecords, 2)
	require.Len(t, decoded.TenderRecords, 1)
	reencoded, err := json.MarshalIndent(decoded, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(result.Output), string(reencoded))
	assert.Contains(t, string(result.Output), "\n  \"RIMSLF\"")
}

func TestConvert_Rejections(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		result := New().Convert([]byte(`{"businessContext":`))
		assert.Equal(t, Rejected, result.Disposition)
		assert.True(t, errors.Is(result.Error, orae.ErrDecode))
		assert.Nil(t, result.RecordSet)
		assert.True(t, result.Disposition.Ack())
	})

	t.Run("input violations", func(t *testing.T) {
		result := New().Convert([]byte(`{}`))
		assert.Equal(t, Rejected, result.Disposition)
		assert.NotEmpty(t, result.Violations)
		assert.Contains(t, result.Error.Error(), "input validation failed")
		assert.Nil(t, result.RecordSet)
	})

	t.Run("input validation disabled", func(t *testing.T) {
		result := New(WithInputValidation(false)).Convert([]byte(`{}`))
		assert.Equal(t, Rejected, result.Disposition)
		assert.Contains(t, result.Error.Error(), "output validation failed")
		assert.Contains(t, result.Violations, "RecordSet contains no OrderRecords or TenderRecords")
		assert.Empty(t, result.Output)
	})

	t.Run("layout override", func(t *testing.T) {
		layout := rims.DefaultLayout()
		for i := range layout.Order {
			if layout.Order[i].Code == "SLFSKU" {
				layout.Order[i].Length = 3
			}
		}
		result := New(WithLayout(layout)).Convert(saleEvent(t))
		assert.Equal(t, Rejected, result.Disposition)
		require.NotEmpty(t, result.Violations)
		assert.Contains(t, result.Violations[0], "SLFSKU")
	})
}

func TestHandle_Published(t *testing.T) {
	pub := &fakePublisher{}
	store := newFakeStore()
	c := New(WithPublisher(pub), WithStore(store), WithClock(func() time.Time { return fixedNow }))

	result := c.Handle(context.Background(), Message{
		ID:         "m-1",
		Data:       saleEvent(t),
		Attributes: map[string]string{"eventType": "SALE"},
	})

	require.NoError(t, result.Error)
	assert.Equal(t, Published, result.Disposition)
	assert.Equal(t, "pub-1", result.PublishedID)
	assert.Equal(t, "in/m-1", result.InputFile)
	assert.Equal(t, "out/m-1", result.OutputFile)
	assert.Equal(t, result.Output, pub.data)
	assert.Equal(t, result.Output, store.outputs["m-1"])
	assert.Equal(t, map[string]string{
		"eventType":     "SALE",
		"responseFor":   "m-1",
		"transformedAt": "2025-03-14T21:06:00Z",
	}, pub.attributes)
}

func TestHandle_WithoutPublisher(t *testing.T) {
	result := New().Handle(context.Background(), Message{ID: "m-2", Data: saleEvent(t)})
	assert.Equal(t, Converted, result.Disposition)
	assert.Empty(t, result.InputFile)
	assert.Empty(t, result.PublishedID)
}

func TestHandle_Rejected(t *testing.T) {
	pub := &fakePublisher{}
	store := newFakeStore()

	result := New(WithPublisher(pub), WithStore(store)).Handle(context.Background(), Message{ID: "m-3", Data: []byte("not json")})

	assert.Equal(t, Rejected, result.Disposition)
	assert.True(t, result.Disposition.Ack())
	assert.Contains(t, store.inputs, "m-3")
	assert.Empty(t, store.outputs)
	assert.Nil(t, pub.data)
}

func TestHandle_Retry(t *testing.T) {
	boom := errors.New("unavailable")

	tests := []struct {
		name  string
		pub   *fakePublisher
		store *fakeStore
	}{
		{"publish fails", &fakePublisher{err: boom}, newFakeStore()},
		{"input save fails", &fakePublisher{}, &fakeStore{inputErr: boom}},
		{"output save fails", &fakePublisher{}, &fakeStore{inputs: map[string][]byte{}, outputErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(WithPublisher(tt.pub), WithStore(tt.store)).Handle(context.Background(), Message{ID: "m-4", Data: saleEvent(t)})
			assert.Equal(t, Retry, result.Disposition)
			assert.False(t, result.Disposition.Ack())
			assert.True(t, errors.Is(result.Error, boom))
			assert.Nil(t, tt.pub.data)
		})
	}
}

func TestResponseAttributes_DoesNotModifyInbound(t *testing.T) {
	inbound := map[string]string{"responseFor": "spoofed", "store": "1234"}

	got := ResponseAttributes(inbound, "m-5", fixedNow)

	assert.Equal(t, "m-5", got[AttrResponseFor])
	assert.Equal(t, "1234", got["store"])
	assert.Equal(t, "spoofed", inbound["responseFor"])
	assert.Len(t, inbound, 2)
}

func TestDisposition_String(t *testing.T) {
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "published", Published.String())
	assert.Equal(t, "retry", Retry.String())
	assert.Equal(t, "disposition(9)", Disposition(9).String())
}
