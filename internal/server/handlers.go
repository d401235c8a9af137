package server

import (
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	authcommands "github.com/eskrenkovic/table-scheduler/internal/modules/auth/commands"
	authdomain "github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	authqueries "github.com/eskrenkovic/table-scheduler/internal/modules/auth/queries"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	gamesessioncommands "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/commands"
	gamesessiondomain "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"
	gamesessionqueries "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/queries"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"
	tablecommands "github.com/eskrenkovic/table-scheduler/internal/modules/table/commands"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"
	tablequeries "github.com/eskrenkovic/table-scheduler/internal/modules/table/queries"

	"github.com/eskrenkovic/mediator-go"
)

func registerAuthHandlers(authenticator *auth.Authenticator, users auth.UserRepository) error {
	err := mediator.RegisterRequestHandler[authcommands.RegisterCommand, authcommands.RegisterResponse](
		authcommands.NewRegisterCommandHandler(authenticator),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authcommands.LoginCommand, auth.TokenPair](
		authcommands.NewLoginCommandHandler(authenticator),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authcommands.RefreshCommand, auth.TokenPair](
		authcommands.NewRefreshCommandHandler(authenticator),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authcommands.LogoutCommand, core.Unit](
		authcommands.NewLogoutCommandHandler(authenticator),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authcommands.ChangePasswordCommand, core.Unit](
		authcommands.NewChangePasswordCommandHandler(authenticator),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authcommands.UpdateUserCommand, authdomain.User](
		authcommands.NewUpdateUserCommandHandler(users),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[authqueries.GetCurrentUserQuery, authdomain.User](
		authqueries.NewGetCurrentUserQueryHandler(users),
	)
	if err != nil {
		return err
	}

	return mediator.RegisterRequestHandler[authqueries.SearchUsersQuery, []authqueries.UserSummary](
		authqueries.NewSearchUsersQueryHandler(users),
	)
}

func registerTableHandlers(tables table.TableRepository, workflow *table.RequestWorkflow) error {
	err := mediator.RegisterRequestHandler[tablecommands.CreateTableCommand, tablecommands.CreateTableResponse](
		tablecommands.NewCreateTableCommandHandler(tables),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.UpdateTableCommand, tabledomain.Table](
		tablecommands.NewUpdateTableCommandHandler(tables),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.DeleteTableCommand, core.Unit](
		tablecommands.NewDeleteTableCommandHandler(tables),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablequeries.GetTableQuery, tabledomain.Table](
		tablequeries.NewGetTableQueryHandler(tables),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablequeries.GetUserTablesQuery, []tabledomain.Table](
		tablequeries.NewGetUserTablesQueryHandler(tables),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.CreateTableRequestCommand, tablecommands.CreateTableRequestResponse](
		tablecommands.NewCreateTableRequestCommandHandler(workflow),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.ApproveTableRequestCommand, tabledomain.TableRequest](
		tablecommands.NewApproveTableRequestCommandHandler(workflow),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.RejectTableRequestCommand, tabledomain.TableRequest](
		tablecommands.NewRejectTableRequestCommandHandler(workflow),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[tablecommands.CancelTableRequestCommand, core.Unit](
		tablecommands.NewCancelTableRequestCommandHandler(workflow),
	)
	if err != nil {
		return err
	}

	return mediator.RegisterRequestHandler[tablequeries.GetTableRequestsQuery, []tabledomain.TableRequest](
		tablequeries.NewGetTableRequestsQueryHandler(workflow),
	)
}

func registerGameSessionHandlers(
	lifecycle *gamesession.Lifecycle,
	intents *gamesession.IntentWorkflow,
	checkins *gamesession.CheckinWorkflow,
) error {
	err := mediator.RegisterRequestHandler[gamesessioncommands.CreateSessionCommand, gamesessioncommands.CreateSessionResponse](
		gamesessioncommands.NewCreateSessionCommandHandler(lifecycle),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.UpdateSessionCommand, gamesessiondomain.Session](
		gamesessioncommands.NewUpdateSessionCommandHandler(lifecycle),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.DeleteSessionCommand, core.Unit](
		gamesessioncommands.NewDeleteSessionCommandHandler(lifecycle),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionQuery, gamesessiondomain.Session](
		gamesessionqueries.NewGetSessionQueryHandler(lifecycle),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessionqueries.GetTableSessionsQuery, []gamesessiondomain.Session](
		gamesessionqueries.NewGetTableSessionsQueryHandler(lifecycle),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.SetIntentCommand, gamesessiondomain.SessionIntent](
		gamesessioncommands.NewSetIntentCommandHandler(intents),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.DeleteIntentCommand, core.Unit](
		gamesessioncommands.NewDeleteIntentCommandHandler(intents),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionIntentsQuery, []gamesessiondomain.SessionIntent](
		gamesessionqueries.NewGetSessionIntentsQueryHandler(intents),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.CreateCheckinCommand, gamesessioncommands.CreateCheckinResponse](
		gamesessioncommands.NewCreateCheckinCommandHandler(checkins),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.UpdateCheckinCommand, gamesessiondomain.SessionCheckin](
		gamesessioncommands.NewUpdateCheckinCommandHandler(checkins),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.DeleteCheckinCommand, core.Unit](
		gamesessioncommands.NewDeleteCheckinCommandHandler(checkins),
	)
	if err != nil {
		return err
	}

	return mediator.RegisterRequestHandler[gamesessionqueries.GetCheckinsQuery, []gamesessiondomain.SessionCheckin](
		gamesessionqueries.NewGetCheckinsQueryHandler(checkins),
	)
}
