package stats

import "time"

type StatsContainer struct {
	Handler *Handler
	Service StatsService
}

func NewStatsContainer(
	profiles ProfileReader,
	streaks StreakReader,
	notifications NotificationReader,
	feedback FeedbackCounter,
	submissions SubmissionTimes,
	location *time.Location,
) *StatsContainer {
	service := NewService(profiles, streaks, notifications, feedback, submissions, location)
	handler := NewHandler(service)

	return &StatsContainer{
		Handler: handler,
		Service: service,
	}
}
