package db

import (
	"testing"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/smfnotes/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory keyed by PK.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func (f *fakeDynamo) PutItem(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]*dynamodb.AttributeValue{}}
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			if item, ok := f.items[*key["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func TestItemRoundTrip(t *testing.T) {
	s := model.Summary{
		Filename:   "bach_846.mid",
		RunId:      "run",
		Format:     1,
		NumTracks:  3,
		Division:   480,
		Tempo:      500000,
		NumNotes:   1200,
		MinKey:     36,
		MaxKey:     84,
		TrackNames: []string{"Piano right", "Piano left"},
		NumErrors:  1,
	}
	assert.Equal(t, s, fromItem(toItem(s)))
}

func TestItemWithoutNames(t *testing.T) {
	item := toItem(model.Summary{Filename: "x.mid"})
	_, ok := item["TrackNames"]
	assert.False(t, ok)
	_, ok = item["RunId"]
	assert.False(t, ok)
}

func TestStorePutAndGet(t *testing.T) {
	store := NewStore(&fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}}, "table")
	require.NoError(t, store.PutSummary(model.Summary{Filename: "a.mid", NumNotes: 3}))
	require.NoError(t, store.PutSummary(model.Summary{Filename: "b.mid", NumNotes: 5}))

	res, err := store.GetSummaries([]string{"a.mid", "missing.mid"})
	require.NoError(t, err)
	assert.Equal(t, map[string]model.Summary{"a.mid": {Filename: "a.mid", NumNotes: 3}}, res)
}

func TestGetSummariesLimits(t *testing.T) {
	store := NewStore(&fakeDynamo{}, "table")

	res, err := store.GetSummaries(nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = store.GetSummaries(make([]string, MaxBatchGet+1))
	assert.Error(t, err)
}
