package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/core/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	store   *MockDocumentStore
	service portssvc.ProjectSvcFacade
	session *domain.Session
	ctx     context.Context
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.store = new(MockDocumentStore)
	suite.service = services.NewProjectService(suite.store)
	suite.session = domain.NewSession("user-1", "token", time.Now(), time.Now().Add(time.Hour))
	suite.ctx = context.Background()
}

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	suite.store.On("CreateDocument", suite.ctx, domain.CollectionProjects, mock.MatchedBy(func(p models.Project) bool {
		return p.Name == "Trip" && p.UserID == "user-1" && p.CreatedAt != ""
	})).Return("p1", nil).Once()

	project, err := suite.service.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: " Trip ", Description: "Summer"}, suite.session)

	suite.Require().NoError(err)
	suite.Equal("p1", project.ProjectID)
	suite.Equal("Trip", project.Name)
	suite.Equal("user-1", project.OwnerID)
	suite.WithinDuration(time.Now(), project.CreatedAt, time.Second)
	suite.store.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestCreateProject_Validation() {
	_, err := suite.service.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "   "}, suite.session)
	suite.ErrorIs(err, apperrors.ErrValidation)

	ended := domain.NewSession("user-1", "token", time.Now(), time.Now().Add(time.Hour))
	ended.End(time.Now())
	_, err = suite.service.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Trip"}, ended)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Trip"}, nil)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.store.AssertNotCalled(suite.T(), "CreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_SaveError() {
	suite.store.On("CreateDocument", suite.ctx, domain.CollectionProjects, mock.Anything).Return("", assert.AnError).Once()

	project, err := suite.service.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Trip"}, suite.session)

	suite.Nil(project)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ProjectServiceTestSuite) TestGetProject_NotFound() {
	suite.store.On("GetDocument", suite.ctx, domain.CollectionProjects, "nope").Return(nil, apperrors.ErrNotFound).Once()

	project, err := suite.service.GetProject(suite.ctx, "nope")

	suite.Nil(project)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProjectServiceTestSuite) TestListProjects() {
	suite.store.On("ListDocuments", suite.ctx, domain.CollectionProjects, (*domain.OrderBy)(nil)).
		Return([]domain.Document{*projectDoc("p1"), *projectDoc("p2")}, nil).Once()

	projects, err := suite.service.ListProjects(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(projects, 2)
	suite.Equal("p1", projects[0].ProjectID)
	suite.Equal("user-1", projects[1].OwnerID)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
