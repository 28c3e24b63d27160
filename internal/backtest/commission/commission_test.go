package commission

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommissionTestSuite struct {
	suite.Suite
}

func TestCommissionSuite(t *testing.T) {
	suite.Run(t, new(CommissionTestSuite))
}

func (suite *CommissionTestSuite) TestPercentFee() {
	fee := NewPercentFee()

	// 10 bps of notional.
	suite.InDelta(1.0, fee.Calculate(100, 10), 1e-12)
	suite.InDelta(0.0, fee.Calculate(0, 10), 1e-12)
}

func (suite *CommissionTestSuite) TestPercentFeeWithRate() {
	fee := NewPercentFeeWithRate(0.01)

	suite.InDelta(10.0, fee.Calculate(100, 10), 1e-12)
}

func (suite *CommissionTestSuite) TestPerShareFeeMinimum() {
	fee := NewPerShareFee()

	// 100 shares at 0.005/share is below the 1.00 minimum.
	suite.Equal(1.0, fee.Calculate(100, 50))
	suite.InDelta(5.0, fee.Calculate(1000, 50), 1e-12)
}

func (suite *CommissionTestSuite) TestTieredFee() {
	fee := NewTieredFee()

	// 5k notional sits in the first tier.
	suite.InDelta(5000*0.0015, fee.Calculate(100, 50), 1e-9)
	// 50k notional reaches the second tier.
	suite.InDelta(50000*0.0010, fee.Calculate(1000, 50), 1e-9)
	// 2m notional reaches the top tier.
	suite.InDelta(2000000*0.0005, fee.Calculate(40000, 50), 1e-9)
}

func (suite *CommissionTestSuite) TestGetFeeHandler() {
	suite.IsType(&PercentFee{}, GetFeeHandler(ModelPercent))
	suite.IsType(&PerShareFee{}, GetFeeHandler(ModelPerShare))
	suite.IsType(&TieredFee{}, GetFeeHandler(ModelTiered))

	// Unknown models fall back to percent.
	suite.IsType(&PercentFee{}, GetFeeHandler("unknown"))
	suite.IsType(&PercentFee{}, GetFeeHandler(""))
}
