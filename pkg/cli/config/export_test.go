package config

import "time"

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewCatalogForTest(sourcesPath, eventsPath, measuresPath string) *Catalog {
	return &Catalog{sourcesPath: sourcesPath, eventsPath: eventsPath, measuresPath: measuresPath}
}

func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{backend: backend, projectID: projectID}
}

func NewSlackForTest(botToken, channelID, apiURL string) *Slack {
	return &Slack{botToken: botToken, channelID: channelID, apiURL: apiURL}
}

func NewExportForTest(location string, interval time.Duration, projects []string) *Export {
	return &Export{location: location, interval: interval, projects: projects}
}
