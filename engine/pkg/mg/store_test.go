package mg

import (
	"context"
	"testing"
	"time"

	"glycostats/engine/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	mongoURI = "mongodb://localhost:27017"
	testDB   = "test"
)

type MongoTestSuite struct {
	suite.Suite
	ms *MongoStore
}

func TestMongoTestSuiteIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	suite.Run(t, new(MongoTestSuite))
}

func (suite *MongoTestSuite) SetupSuite() {
	ms, err := New(context.Background(), defs.MongoConfig{URI: mongoURI, Database: testDB}, zap.NewExample())
	if err != nil {
		panic(err)
	}
	suite.ms = ms
}

func (suite *MongoTestSuite) AfterTest(_, _ string) {
	suite.T().Log("teardown test db")
	assert.NoError(suite.T(), suite.ms.Client.Database(testDB).Drop(context.Background()), "unable to drop test db")
}

func newCbg(id string, t time.Time, value float64) defs.Cbg {
	return defs.Cbg{
		BaseDatum: defs.BaseDatum{
			ID:     id,
			Type:   defs.CbgType,
			Source: "Dexcom",
			BaseTime: defs.BaseTime{
				Timezone:   "UTC",
				NormalTime: t.UTC().Format(time.RFC3339),
				Epoch:      t.UnixMilli(),
			},
		},
		Bg: defs.Bg{
			Units:     defs.MgdL,
			Value:     value,
			LocalDate: t.UTC().Format("2006-01-02"),
		},
		DeviceName: "Dexcom-G6",
	}
}

func (suite *MongoTestSuite) TestReadWriteDataIntegration() {
	ctx := context.Background()
	times := []time.Time{
		time.Date(2022, time.May, 12, 1, 30, 0, 0, time.UTC),
		time.Date(2022, time.May, 15, 1, 30, 0, 0, time.UTC),
		time.Date(2022, time.May, 10, 0, 0, 0, 0, time.UTC), // Start.
		time.Date(2022, time.May, 20, 0, 0, 0, 0, time.UTC), // End.
	}
	inserted := []defs.Cbg{
		newCbg("cbg-1", times[0], 117),
		newCbg("cbg-2", times[1], 130),
	}

	for _, c := range inserted {
		res, err := suite.ms.WriteData(ctx, c)
		assert.NoError(suite.T(), err, "unable to write cbg to test db")
		assert.True(suite.T(), res.MatchedCount == 0, "not unique entry")
	}

	raws, err := suite.ms.ReadData(ctx, times[2].UnixMilli(), times[3].UnixMilli())
	assert.NoError(suite.T(), err, "unable to read records from test db")
	assert.Len(suite.T(), raws, len(inserted))
	for i, raw := range raws {
		d, err := defs.Decode(raw)
		assert.NoError(suite.T(), err)
		assert.EqualValues(suite.T(), inserted[i], d)
	}
}

func (suite *MongoTestSuite) TestWriteDataKeepsFirstIntegration() {
	ctx := context.Background()
	t := time.Date(2022, time.May, 12, 1, 30, 0, 0, time.UTC)

	_, err := suite.ms.WriteData(ctx, newCbg("cbg-1", t, 117))
	assert.NoError(suite.T(), err)
	res, err := suite.ms.WriteData(ctx, newCbg("cbg-1", t, 200))
	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, res.MatchedCount)

	raws, err := suite.ms.ReadData(ctx, t.UnixMilli(), t.Add(time.Minute).UnixMilli())
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), raws, 1)
	assert.EqualValues(suite.T(), 117, raws[0]["value"])
}
