package slack

// BuildMonitoringBlocks is exported for testing
var BuildMonitoringBlocks = buildMonitoringBlocks
