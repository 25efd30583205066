package chains

import (
	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

// Algorand renders distributions collected out of band. The relay list is
// gathered by a separate crawler whose CSV output lands directly in the
// processed data directory, so there is nothing to fetch here.
func Algorand() survey.Chain {
	return survey.Chain{
		Name:             "algorand",
		Display:          "Algorand",
		CollectionMethod: "file",
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         plotOnlyClassify,
				ConvertCountries: true,
			},
			{
				Kind:             survey.KindHosting,
				Classify:         plotOnlyClassify,
				ConvertCountries: true,
			},
		},
	}
}

// plotOnlyClassify satisfies the dimension contract for chains that never
// run the processing stage.
func plotOnlyClassify(_ survey.Deps, _ survey.Record) (string, bool) {
	return "", false
}
