package db

import (
	"strconv"

	"github.com/jsphweid/smfnotes/constants"
	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// MaxBatchGet is the most keys DynamoDB accepts in one BatchGetItem.
const MaxBatchGet = 100

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// NewLocalStore connects to the endpoint and table from the environment.
func NewLocalStore() (*Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStore(dynamodb.New(sess), constants.GetDynamoTable()), nil
}

func number[A constraints.Unsigned](v A) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatUint(uint64(v), 10))}
}

func toItem(s model.Summary) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(s.Filename)},
		"Format":    number(s.Format),
		"NumTracks": number(s.NumTracks),
		"Division":  number(s.Division),
		"Tempo":     number(s.Tempo),
		"NumNotes":  number(s.NumNotes),
		"MinKey":    number(s.MinKey),
		"MaxKey":    number(s.MaxKey),
		"NumErrors": number(s.NumErrors),
	}
	if s.RunId != "" {
		item["RunId"] = &dynamodb.AttributeValue{S: aws.String(s.RunId)}
	}
	// DynamoDB rejects empty sets
	if len(s.TrackNames) > 0 {
		item["TrackNames"] = &dynamodb.AttributeValue{L: make([]*dynamodb.AttributeValue, 0, len(s.TrackNames))}
		for _, name := range s.TrackNames {
			item["TrackNames"].L = append(item["TrackNames"].L, &dynamodb.AttributeValue{S: aws.String(name)})
		}
	}
	return item
}

func readNumber(item map[string]*dynamodb.AttributeValue, name string, bits int) uint64 {
	v, ok := item[name]
	if !ok || v.N == nil {
		return 0
	}
	n, _ := strconv.ParseUint(*v.N, 10, bits)
	return n
}

func fromItem(item map[string]*dynamodb.AttributeValue) model.Summary {
	var s model.Summary
	if v := item["PK"]; v != nil && v.S != nil {
		s.Filename = *v.S
	}
	if v := item["RunId"]; v != nil && v.S != nil {
		s.RunId = *v.S
	}
	s.Format = uint16(readNumber(item, "Format", 16))
	s.NumTracks = uint16(readNumber(item, "NumTracks", 16))
	s.Division = uint16(readNumber(item, "Division", 16))
	s.Tempo = uint32(readNumber(item, "Tempo", 32))
	s.NumNotes = uint32(readNumber(item, "NumNotes", 32))
	s.MinKey = uint8(readNumber(item, "MinKey", 8))
	s.MaxKey = uint8(readNumber(item, "MaxKey", 8))
	s.NumErrors = uint16(readNumber(item, "NumErrors", 16))
	if v := item["TrackNames"]; v != nil {
		for _, name := range v.L {
			if name.S != nil {
				s.TrackNames = append(s.TrackNames, *name.S)
			}
		}
	}
	return s
}

func (s *Store) PutSummary(summary model.Summary) error {
	_, err := s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      toItem(summary),
	})
	return errors.Wrapf(err, "could not store summary for %v", summary.Filename)
}

// GetSummaries looks up summaries by filename. Missing files are absent
// from the result.
func (s *Store) GetSummaries(filenames []string) (map[string]model.Summary, error) {
	if len(filenames) > MaxBatchGet {
		return nil, errors.Errorf("cannot get more than %d summaries at once, got %d", MaxBatchGet, len(filenames))
	}

	res := make(map[string]model.Summary)
	if len(filenames) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	dbres, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}

	for _, item := range dbres.Responses[s.table] {
		summary := fromItem(item)
		res[summary.Filename] = summary
	}
	return res, nil
}
