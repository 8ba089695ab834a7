package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/quizmaster/internal/container"
	"github.com/saulo-duarte/quizmaster/internal/router"
)

var chiLambda *chiadapter.ChiLambda

func init() {
	c := container.New()
	chiLambda = chiadapter.New(router.New(c.RouterConfig()))
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
