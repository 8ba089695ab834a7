package profile

type ProfileContainer struct {
	Handler *Handler
	Service ProfileService
	Repo    ProfileRepository
}

// NewProfileContainer wires the profile feature around an existing repository,
// which the achievement evaluator also reads.
func NewProfileContainer(
	repo ProfileRepository,
	users UserLookup,
	submissions SubmissionReader,
	achievements AchievementEvaluator,
	leaderboardSize int,
) *ProfileContainer {
	service := NewService(repo, users, submissions, achievements, leaderboardSize)
	handler := NewHandler(service)

	return &ProfileContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

