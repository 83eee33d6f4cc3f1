// Package operation
package operation

type DatabaseOperations struct {
	historyOperation    HistoryOperationInterface
	statisticsOperation StatisticsOperationInterface
}

func NewDatabaseOperations(
	historyOperation HistoryOperationInterface,
	statisticsOperation StatisticsOperationInterface,
) *DatabaseOperations {
	return &DatabaseOperations{
		historyOperation:    historyOperation,
		statisticsOperation: statisticsOperation,
	}
}

func (db *DatabaseOperations) HistoryOperation() HistoryOperationInterface {
	return db.historyOperation
}

func (db *DatabaseOperations) StatisticsOperation() StatisticsOperationInterface {
	return db.statisticsOperation
}
