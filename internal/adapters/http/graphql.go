package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/mashup/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the place and article services.
// Field names follow the JSON tags of the domain types.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"country_code": &graphql.Field{Type: graphql.String},
			"postal_code":  &graphql.Field{Type: graphql.String},
			"place_name":   &graphql.Field{Type: graphql.String},
			"admin_name1":  &graphql.Field{Type: graphql.String},
			"admin_code1":  &graphql.Field{Type: graphql.String},
			"admin_name2":  &graphql.Field{Type: graphql.String},
			"admin_code2":  &graphql.Field{Type: graphql.String},
			"admin_name3":  &graphql.Field{Type: graphql.String},
			"admin_code3":  &graphql.Field{Type: graphql.String},
			"latitude":     &graphql.Field{Type: graphql.Float},
			"longitude":    &graphql.Field{Type: graphql.Float},
			"accuracy":     &graphql.Field{Type: graphql.Int},
		},
	})

	articleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Article",
		Fields: graphql.Fields{
			"title":     &graphql.Field{Type: graphql.String},
			"link":      &graphql.Field{Type: graphql.String},
			"published": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"places": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Places whose city or state equals q, or whose postal code starts with q",
				Args: graphql.FieldConfigArgument{
					"q": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["q"].(string)
					return deps.Places.Search(p.Context, q)
				},
			},
			"placesInView": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Up to ten distinct towns inside the viewport; sw and ne are \"lat,lng\"",
				Args: graphql.FieldConfigArgument{
					"sw": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"ne": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, msg := parseViewport(p.Args["sw"].(string), p.Args["ne"].(string))
					if msg != "" {
						return nil, fmt.Errorf("%s: %w", msg, domain.ErrInvalidArgument)
					}
					return deps.Places.InView(p.Context, b)
				},
			},
			"articles": &graphql.Field{
				Type:        graphql.NewList(articleType),
				Description: "News articles for a postal or geographic code",
				Args: graphql.FieldConfigArgument{
					"geo": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					geo := p.Args["geo"].(string)
					byGeo, err := deps.Articles.Lookup(p.Context, geo)
					if err != nil {
						return nil, err
					}
					return byGeo[geo], nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
