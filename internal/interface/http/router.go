package httpapi

func (s *Server) registerRoutes() {
	s.mux.Handle("/api/ping", s.wrapGet(s.handlePing))
	s.mux.Handle("/api/health", s.wrapGet(s.handleHealth))

	s.mux.Handle("/api/ica-report", s.wrapGet(s.handleICA))
	s.mux.Handle("/api/cost-per-kg-gained-report", s.wrapGet(s.handleCostPerKg))
	s.mux.Handle("/api/profit-and-loss-report", s.wrapGet(s.handleProfitLoss))
	s.mux.Handle("/api/batch-profitability-report", s.wrapGet(s.handleBatchProfitability))
	s.mux.Handle("/api/gdp-report", s.wrapGet(s.handleGDP))
	s.mux.Handle("/api/fertility-rate-report", s.wrapGet(s.handleFertilityRate))
	s.mux.Handle("/api/parturition-rate-report", s.wrapGet(s.handleParturitionRate))
	s.mux.Handle("/api/prolificacy-report", s.wrapGet(s.handleProlificacy))
	s.mux.Handle("/api/reproductive-ranking-report", s.wrapGet(s.handleReproductiveRanking))
	s.mux.Handle("/api/density-report", s.wrapGet(s.handleDensity))

	s.mux.Handle("/api/withdrawal-alerts", s.wrapGet(s.handleWithdrawalAlerts))
	s.mux.Handle("/api/ineffective-treatment-alerts", s.wrapGet(s.handleIneffectiveTreatments))
	s.mux.Handle("/api/low-stock-alerts", s.wrapGet(s.handleLowStock))

	s.mux.Handle("/api/optimal-breeding-pairing", s.wrapGet(s.handleOptimalPairing))

	s.mux.Handle("/api/animals", s.wrapCollection(s.handleListAnimals, s.handleCreateAnimal))
	s.mux.Handle("/api/animals/status", s.wrapPost(s.handleUpdateAnimalStatus))
	s.mux.Handle("/api/lines", s.wrapCollection(s.handleListLines, s.handleCreateLine))
	s.mux.Handle("/api/locations", s.wrapCollection(s.handleListLocations, s.handleCreateLocation))
	s.mux.Handle("/api/weight-logs", s.wrapCollection(s.handleListWeightLogs, s.handleCreateWeightLog))
	s.mux.Handle("/api/reproduction-events", s.wrapCollection(s.handleListReproductionEvents, s.handleCreateReproductionEvent))
	s.mux.Handle("/api/health-logs", s.wrapCollection(s.handleListHealthLogs, s.handleCreateHealthLog))
	s.mux.Handle("/api/treatments", s.wrapCollection(s.handleListTreatments, s.handleCreateTreatment))
	s.mux.Handle("/api/medications", s.wrapCollection(s.handleListMedications, s.handleCreateMedication))
	s.mux.Handle("/api/feed-inventory", s.wrapCollection(s.handleListFeedInventory, s.handleCreateFeedInventory))
	s.mux.Handle("/api/feeding-logs", s.wrapCollection(s.handleListFeedingLogs, s.handleCreateFeedingLog))
	s.mux.Handle("/api/transactions", s.wrapCollection(s.handleListTransactions, s.handleCreateTransaction))
}
